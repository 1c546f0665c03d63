// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package waveshare2in66b

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// errorHandler is a wrapper for error management. After the first failure
// every further primitive is skipped and the failure is kept in err.
type errorHandler struct {
	d   *Dev
	err error
}

func (eh *errorHandler) fail(f Fault, err error) {
	if err != nil {
		eh.err = &Error{Fault: f, Err: err}
	}
}

func (eh *errorHandler) rstOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.fail(ResetFault, eh.d.rst.Out(l))
}

func (eh *errorHandler) dcOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.fail(DCFault, eh.d.dc.Out(l))
}

// csOut is a no-op when chip select is handled by the SPI port.
func (eh *errorHandler) csOut(l gpio.Level) {
	if eh.err != nil || eh.d.cs == nil {
		return
	}
	eh.fail(CSFault, eh.d.cs.Out(l))
}

// cTx writes w in chunks the port accepts.
func (eh *errorHandler) cTx(w []byte) {
	for len(w) > 0 && eh.err == nil {
		n := min(len(w), eh.d.maxTxSize)
		eh.fail(BusFault, eh.d.c.Tx(w[:n], nil))
		w = w[n:]
	}
}

func (eh *errorHandler) sendCommand(cmd byte) {
	if eh.err != nil {
		return
	}

	eh.dcOut(gpio.Low)
	eh.csOut(gpio.Low)
	eh.cTx([]byte{cmd})
	eh.csOut(gpio.High)
}

func (eh *errorHandler) sendData(data []byte) {
	if eh.err != nil || len(data) == 0 {
		return
	}

	eh.dcOut(gpio.High)
	eh.csOut(gpio.Low)
	eh.cTx(data)
	eh.csOut(gpio.High)
}

// reset pulses the reset line low. The controller needs the line high for
// initial before the pulse and again after it.
func (eh *errorHandler) reset(initial, pulse time.Duration) {
	eh.rstOut(gpio.High)
	time.Sleep(initial)
	eh.rstOut(gpio.Low)
	time.Sleep(pulse)
	eh.rstOut(gpio.High)
	time.Sleep(initial)
}

// waitUntilIdle blocks while the controller drives busy high.
func (eh *errorHandler) waitUntilIdle() {
	eh.waitWhile(gpio.High)
}

// waitWhile blocks as long as the busy line reads level. Edges only wake the
// loop early; the line is re-read every time. There is no timeout.
func (eh *errorHandler) waitWhile(level gpio.Level) {
	if eh.err != nil {
		return
	}
	for eh.d.busy.Read() == level {
		eh.d.busy.WaitForEdge(eh.d.opts.BusyPoll)
	}
}
