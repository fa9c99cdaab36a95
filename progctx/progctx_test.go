// Copyright (c) 2024-2026, The LTEGRID Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

package progctx

import (
	"context"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	ctx := New(context.Background())
	_ = context.Context(ctx)  // ProgCtx should implement context.Context
	ctx2 := New(nil)          // nolint
	_ = context.Context(ctx2) // ProgCtx should implement context.Context
}

func TestProgCtx_Cancel(t *testing.T) {
	ctx := New(context.Background())
	ctx.Cancel(errors.Errorf("test error"))
	<-ctx.Done()
	assert.True(t, ctx.Err() == context.Canceled)

	ctx.Cancel(errors.Errorf("second cancel is ignored"))
	assert.True(t, ctx.Err() == context.Canceled)
}

func TestProgCtx_CancelNilError(t *testing.T) {
	ctx := New(context.Background())
	ctx.Cancel(nil)
	<-ctx.Done()
	assert.True(t, ctx.Err() == context.Canceled)
}

func TestProgCtx_Defer(t *testing.T) {
	ctx := New(context.Background())
	var calls int32
	ctx.Defer(func() { atomic.AddInt32(&calls, 1) })
	ctx.Defer(func() { atomic.AddInt32(&calls, 1) })

	ctx.Cancel("exit")
	ctx.Cancel("exit")
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Panics(t, func() { ctx.Defer(func() {}) })
}

func TestProgCtx_Wait(t *testing.T) {
	ctx := New(context.Background())

	ctx.WaitAdd("test", 3)
	assert.Equal(t, 3, ctx.WaitCount())
	for i := 0; i < 3; i++ {
		go func() { defer ctx.WaitDone("test") }()
	}
	ctx.Wait()
	assert.Equal(t, 0, ctx.WaitCount())

	var ran int32
	ctx.Go("worker", func() { atomic.StoreInt32(&ran, 1) })
	ctx.Wait()
	assert.Equal(t, int32(1), atomic.LoadInt32(&ran))

	assert.Panics(t, func() { ctx.WaitDone("never-started") })
}

func TestProgCtx_HandleSignals(t *testing.T) {
	ctx := New(context.Background())
	ctx.HandleSignals()
	assert.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGHUP))

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context not cancelled by signal")
	}
	ctx.Wait()
}

func TestProgCtx_HandleSignalsStopsOnCancel(t *testing.T) {
	ctx := New(context.Background())
	ctx.HandleSignals()
	ctx.Cancel(nil)
	ctx.Wait()
	assert.Equal(t, 0, ctx.WaitCount())
}
