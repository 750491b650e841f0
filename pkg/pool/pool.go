package pool

import (
	"io"
	"runtime"
	"sync"
)

// parallelizeAlone calculates the result of f count times
func parallelizeAlone(f func(int) interface{}, count int) []interface{} {
	results := make([]interface{}, count)
	for i := 0; i < len(results); i++ {
		results[i] = f(i)
	}
	return results
}

// command asks a worker to evaluate f at index i, and store the result in results[i].
type command struct {
	i       int
	f       func(int) interface{}
	results []interface{}
	done    *sync.WaitGroup
}

// worker listens to commands until the channel is closed.
func worker(commands <-chan command) {
	for c := range commands {
		c.results[c.i] = c.f(c.i)
		c.done.Done()
	}
}

// Pool represents a pool of workers, used for parallelizing functions.
//
// Functions needing a *Pool will work with a nil receiver, doing the equivalent
// work on the current thread instead.
//
// By creating a pool, you avoid the overhead of spinning up goroutines for
// each new operation.
type Pool struct {
	// The common channel used to send commands to the workers.
	//
	// This effectively makes a work stealing pool.
	commands chan command
	// This holds the number of workers we've created
	workerCount int
	closeOnce   sync.Once
}

// NewPool creates a new pool, with a certain number of workers.
//
// If count <= 0, this will use the number of available CPUs instead.
func NewPool(count int) *Pool {
	if count <= 0 {
		count = runtime.NumCPU()
	}

	p := &Pool{
		commands:    make(chan command),
		workerCount: count,
	}
	for i := 0; i < count; i++ {
		go worker(p.commands)
	}
	return p
}

// Workers returns the number of goroutines serving this pool, or 1 for a nil pool.
func (p *Pool) Workers() int {
	if p == nil {
		return 1
	}
	return p.workerCount
}

// TearDown stops the workers. It is safe to call more than once.
func (p *Pool) TearDown() {
	if p == nil {
		return
	}
	p.closeOnce.Do(func() { close(p.commands) })
}

// Parallelize calls a function count times, passing in indices from 0..count-1.
//
// The result will be a slice containing [f(0), f(1), ..., f(count - 1)].
func (p *Pool) Parallelize(count int, f func(int) interface{}) []interface{} {
	if p == nil {
		return parallelizeAlone(f, count)
	}

	results := make([]interface{}, count)
	var done sync.WaitGroup
	done.Add(count)
	for i := 0; i < count; i++ {
		p.commands <- command{
			i:       i,
			f:       f,
			results: results,
			done:    &done,
		}
	}
	done.Wait()
	return results
}

// LockedReader wraps an io.Reader to be safe for concurrent reads.
//
// This means acquiring a lock whenever a read happens, so be aware of that
// for performance or concurrency reasons.
type LockedReader struct {
	reader io.Reader
	m      sync.Mutex
}

// NewLockedReader creates a LockedReader by wrapping an underlying value.
// Wrapping a *LockedReader returns it unchanged.
func NewLockedReader(r io.Reader) *LockedReader {
	if lr, ok := r.(*LockedReader); ok {
		return lr
	}
	return &LockedReader{reader: r}
}

// Read implements io.Reader for LockedReader
//
// Naturally, when calling this function concurrently, what value ends up getting
// read is raced, but you won't end up reading the same value twice, or otherwise
// messing up the state of the reader.
func (r *LockedReader) Read(p []byte) (int, error) {
	r.m.Lock()
	defer r.m.Unlock()
	return r.reader.Read(p)
}
