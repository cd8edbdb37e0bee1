/*
Copyright 2025 The Tweetpatch Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package manager

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Manager keeps track of the go routines in the process so it can be shut
// down gracefully by waiting for them to finish.
type Manager interface {
	// Add starts function in a go routine named name and tracks it until it returns.
	// A panic in function is logged and swallowed so the others keep running.
	Add(ctx context.Context, name string, function func(context.Context))

	// Wait blocks until all the go routines in the manager are completed.
	Wait()

	// WaitWithTimeout is Wait bounded by timeout.
	WaitWithTimeout(timeout time.Duration) error
}

type GoRoutineManager struct {
	logger *zap.Logger
	wg     sync.WaitGroup
}

func New(logger *zap.Logger) Manager {
	return &GoRoutineManager{
		logger: logger.Named("manager"),
	}
}

func (g *GoRoutineManager) Add(ctx context.Context, name string, f func(context.Context)) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				g.logger.Error("go routine panicked", zap.String("name", name), zap.String("panic", fmt.Sprint(r)))
			}
		}()
		g.logger.Debug("go routine started", zap.String("name", name))
		f(ctx)
		g.logger.Debug("go routine finished", zap.String("name", name))
	}()
}

func (g *GoRoutineManager) Wait() {
	g.wg.Wait()
}

func (g *GoRoutineManager) WaitWithTimeout(timeout time.Duration) error {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()

	select {
	case <-time.After(timeout):
		return fmt.Errorf("timed out after %s waiting for go routines", timeout)
	case <-done:
		return nil
	}
}
