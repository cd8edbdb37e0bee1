/*
Copyright 2021 The Fission Authors.

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
package signals

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// SetupSignalHandlerWithContext returns a context cancelled on the first
// SIGINT or SIGTERM. A second signal exits the process with status 1.
func SetupSignalHandlerWithContext(parent context.Context, logger *zap.Logger) context.Context {
	ctx, cancel := context.WithCancel(parent)
	c := make(chan os.Signal, 2)
	signal.Notify(c, shutdownSignals...)
	go func() {
		select {
		case sig := <-c:
			logger.Info("received signal", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
			signal.Stop(c)
			return
		}
		sig := <-c
		logger.Error("received second signal, exiting", zap.String("signal", sig.String()))
		os.Exit(1)
	}()

	return ctx
}
