package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	worker "github.com/okian/mvdstats/internal/adapters/mq/worker"
	model "github.com/okian/mvdstats/internal/domain/model"
	logging "github.com/okian/mvdstats/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing.
type mockQueue struct {
	jobs chan worker.Job
	once sync.Once
}

func newMockQueue() *mockQueue {
	return &mockQueue{jobs: make(chan worker.Job, 10)}
}

func (mq *mockQueue) Dequeue(_ context.Context) <-chan worker.Job { return mq.jobs }

func (mq *mockQueue) Close() error {
	mq.once.Do(func() { close(mq.jobs) })
	return nil
}

type mockAnalyzer struct {
	fail  map[string]error
	delay time.Duration
}

func (ma *mockAnalyzer) Analyze(ctx context.Context, data []byte) (model.Match, error) {
	if ma.delay > 0 {
		time.Sleep(ma.delay)
	}
	if err, ok := ma.fail[string(data)]; ok {
		return model.Match{}, err
	}
	return model.Match{Map: string(data), Players: []model.Player{{Name: "alpha", Frags: 3}}}, nil
}

type mockSink struct {
	mu        sync.Mutex
	completed map[string]model.Match
	failed    map[string]error
	storeErr  error
}

func newMockSink() *mockSink {
	return &mockSink{completed: make(map[string]model.Match), failed: make(map[string]error)}
}

func (ms *mockSink) Complete(_ context.Context, j worker.Job, m model.Match) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.storeErr != nil {
		return ms.storeErr
	}
	ms.completed[j.ID] = m
	return nil
}

func (ms *mockSink) Fail(_ context.Context, j worker.Job, err error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.failed[j.ID] = err
}

func (ms *mockSink) snapshot() (map[string]model.Match, map[string]error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	c := make(map[string]model.Match, len(ms.completed))
	for k, v := range ms.completed {
		c[k] = v
	}
	f := make(map[string]error, len(ms.failed))
	for k, v := range ms.failed {
		f[k] = v
	}
	return c, f
}

func job(id, data string) worker.Job {
	return model.Demo{ID: id, Checksum: "sum-" + id, Data: []byte(data)}
}

func TestWorker(t *testing.T) {
	convey.Convey("Given a worker with a queue, analyzer and sink", t, func() {
		q := newMockQueue()
		errBroken := errors.New("broken demo")
		analyzer := &mockAnalyzer{fail: map[string]error{"broken": errBroken}}
		sink := newMockSink()
		w := worker.NewInMemoryWorker(q, analyzer, sink,
			worker.WithName("test-worker"),
			worker.WithLogger(logging.Nop()),
		)

		convey.Convey("When jobs are processed until the queue closes", func() {
			q.jobs <- job("m1", "dm4")
			q.jobs <- job("m2", "broken")
			_ = q.Close()

			w.Run(context.Background())
			completed, failed := sink.snapshot()

			convey.Convey("Then successful analyses are completed with their ids", func() {
				convey.So(completed, convey.ShouldHaveLength, 1)
				convey.So(completed["m1"].ID, convey.ShouldEqual, "m1")
				convey.So(completed["m1"].Checksum, convey.ShouldEqual, "sum-m1")
				convey.So(completed["m1"].Map, convey.ShouldEqual, "dm4")
			})

			convey.Convey("Then failed analyses are reported", func() {
				convey.So(errors.Is(failed["m2"], errBroken), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the sink rejects the result", func() {
			sink.storeErr = errors.New("disk full")
			q.jobs <- job("m1", "dm4")
			_ = q.Close()

			w.Run(context.Background())
			completed, failed := sink.snapshot()

			convey.Convey("Then nothing is recorded and the worker keeps going", func() {
				convey.So(completed, convey.ShouldBeEmpty)
				convey.So(failed, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When the worker is shut down while idle", func() {
			go w.Run(context.Background())

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			err := w.Shutdown(ctx)

			convey.Convey("Then it stops", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(w.Shutdown(ctx), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			w.Run(ctx)

			convey.Convey("Then Run returns", func() {
				select {
				case <-w.Done():
					convey.So(true, convey.ShouldBeTrue)
				default:
					convey.So("worker still running", convey.ShouldBeEmpty)
				}
			})
		})
	})
}

func TestPool(t *testing.T) {
	convey.Convey("Given a pool of three workers", t, func() {
		q := newMockQueue()
		sink := newMockSink()
		pool := worker.NewPool(3, q, &mockAnalyzer{delay: time.Millisecond}, sink)
		pool.Start(context.Background())

		for _, id := range []string{"a", "b", "c", "d", "e"} {
			q.jobs <- job(id, "dm2")
		}

		convey.Convey("When the pool is shut down", func() {
			err := pool.Shutdown(context.Background())
			completed, _ := sink.snapshot()

			convey.Convey("Then every queued job is drained first", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(pool.Size(), convey.ShouldEqual, 3)
				convey.So(completed, convey.ShouldHaveLength, 5)
			})
		})
	})

	convey.Convey("Given a pool created with no worker count", t, func() {
		pool := worker.NewPool(0, newMockQueue(), &mockAnalyzer{}, newMockSink())

		convey.Convey("Then it has at least one worker", func() {
			convey.So(pool.Size(), convey.ShouldBeGreaterThan, 0)
		})
	})
}
