// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package coop is a cooperative multitasking runtime for resource-constrained,
// single-threaded environments: microcontrollers with kilobytes of RAM, no
// preemption, and no dynamic allocation after startup.
//
// Application code expresses long-running, I/O-waiting logic as Routines:
// sequential bodies that yield control at well-defined suspension points
// (YIELD, AWAIT, DELAY, END). A Scheduler interleaves many such routines on a
// single execution thread, stepping at most one per Loop call, with no OS,
// threads, or heap churn beyond what the host's own Go runtime already pays
// for.
//
// # Writing a routine
//
// A routine is any type that embeds [Base] and implements [Routine]'s Step
// method as a label-dispatched state machine: a switch over Base.ResumeAt
// wrapped in a for loop (so that a case can Resume at another label and
// `continue`, dispatching to it within the same Step call — e.g. to let LOOP
// jump back to the top of the body without waiting for another tick):
//
//	type Blinker struct {
//		coop.Base
//		led func(on bool)
//	}
//
//	const (
//		blinkOn coop.Label = iota
//		blinkOff
//	)
//
//	func (b *Blinker) Step() coop.Status {
//		for {
//			switch b.ResumeAt() {
//			case blinkOn:
//				b.led(true)
//				return b.Delay(500, blinkOff)
//			case blinkOff:
//				if b.Delaying(blinkOff) {
//					return coop.StatusDelaying
//				}
//				b.led(false)
//				b.Resume(blinkOn)
//				return coop.StatusYielding
//			default:
//				return b.End()
//			}
//		}
//	}
//
// Local variables declared inside Step do NOT survive a suspension: every
// call starts a fresh Go stack frame. Durable state belongs on the routine's
// own struct fields, never in a local across a suspension point.
package coop
