package coop_test

import (
	"fmt"
	"strings"

	"github.com/tinycoro/coop"
)

// yielderRoutine implements spec §8 scenario 1: `LOOP { log(name); YIELD; }`.
type yielderRoutine struct {
	coop.Base
	log *strings.Builder
}

const yielderBegin coop.Label = iota

func (r *yielderRoutine) Step() coop.Status {
	for {
		switch r.ResumeAt() {
		case yielderBegin:
			r.log.WriteString(r.Name())
			r.log.WriteByte(',')
			return r.Yield(yielderBegin)
		default:
			return r.End()
		}
	}
}

// Example_twoYielders reproduces spec §8 scenario 1: after 6 Loop calls,
// the log reads "A,B,A,B,A,B".
func Example_twoYielders() {
	clock := coop.NewFakeClock(0)
	s := coop.NewScheduler(coop.WithClock(clock))
	var log strings.Builder

	a := &yielderRoutine{Base: coop.NewBase("A", clock), log: &log}
	b := &yielderRoutine{Base: coop.NewBase("B", clock), log: &log}
	_ = s.Register(a)
	_ = s.Register(b)
	_ = s.Setup()

	for i := 0; i < 6; i++ {
		_ = s.Loop()
	}

	fmt.Println(strings.TrimSuffix(log.String(), ","))
	// Output:
	// A,B,A,B,A,B
}

// tickerRoutine implements spec §8 scenario 2: `LOOP { log("tick"); DELAY(100); }`.
type tickerRoutine struct {
	coop.Base
	log *strings.Builder
}

const (
	tickerBegin coop.Label = iota
	tickerWaiting
)

func (r *tickerRoutine) Step() coop.Status {
	for {
		switch r.ResumeAt() {
		case tickerBegin:
			r.log.WriteString("tick,")
			return r.Delay(100, tickerWaiting)
		case tickerWaiting:
			if r.Delaying(tickerWaiting) {
				return coop.StatusDelaying
			}
			r.Resume(tickerBegin)
			continue
		default:
			return r.End()
		}
	}
}

// Example_delayFullPeriod reproduces the first half of spec §8 scenario 2:
// with the fake clock advanced 100ms between each Loop call, five calls
// produce five ticks.
func Example_delayFullPeriod() {
	clock := coop.NewFakeClock(0)
	s := coop.NewScheduler(coop.WithClock(clock))
	var log strings.Builder
	r := &tickerRoutine{Base: coop.NewBase("ticker", clock), log: &log}
	_ = s.Register(r)
	_ = s.Setup()

	for i := 0; i < 5; i++ {
		clock.Advance(100)
		_ = s.Loop()
	}

	fmt.Println(strings.TrimSuffix(log.String(), ","))
	// Output:
	// tick,tick,tick,tick,tick
}

// Example_delayPartialPeriod reproduces the second half of spec §8 scenario
// 2: advancing only 50ms between calls, five Loop calls produce three
// ticks (the deadline only elapses on every other call).
func Example_delayPartialPeriod() {
	clock := coop.NewFakeClock(0)
	s := coop.NewScheduler(coop.WithClock(clock))
	var log strings.Builder
	r := &tickerRoutine{Base: coop.NewBase("ticker", clock), log: &log}
	_ = s.Register(r)
	_ = s.Setup()

	for i := 0; i < 5; i++ {
		clock.Advance(50)
		_ = s.Loop()
	}

	fmt.Println(strings.TrimSuffix(log.String(), ","))
	// Output:
	// tick,tick,tick
}

// awaiterRoutine implements spec §8 scenario 3: `AWAIT(ready); log("go"); END;`.
type awaiterRoutine struct {
	coop.Base
	ready *bool
	log   *strings.Builder
}

const awaiterBegin coop.Label = iota

func (r *awaiterRoutine) Step() coop.Status {
	for {
		switch r.ResumeAt() {
		case awaiterBegin:
			if r.Awaiting(*r.ready, awaiterBegin) {
				return coop.StatusAwaiting
			}
			r.log.WriteString("go")
			return r.End()
		default:
			return r.End()
		}
	}
}

// Example_awaitOnPredicate reproduces spec §8 scenario 3: ten Loop calls
// with ready=false produce no output; setting ready=true and stepping once
// more produces "go" and the routine ends.
func Example_awaitOnPredicate() {
	clock := coop.NewFakeClock(0)
	s := coop.NewScheduler(coop.WithClock(clock))
	var log strings.Builder
	ready := false
	r := &awaiterRoutine{Base: coop.NewBase("awaiter", clock), ready: &ready, log: &log}
	_ = s.Register(r)
	_ = s.Setup()

	for i := 0; i < 10; i++ {
		_ = s.Loop()
	}
	fmt.Printf("before=%q status=%s\n", log.String(), r.Status())

	ready = true
	_ = s.Loop()
	fmt.Printf("after=%q status=%s\n", log.String(), r.Status())

	// Output:
	// before="" status=Awaiting
	// after="go" status=Ended
}

// channelWriterRoutine and channelReaderRoutine implement spec §8 scenario
// 4: a writer copies 'H','i','\n' into a channel one byte per iteration
// after YIELD; a reader awaits CanRead and prints each byte.
type channelWriterRoutine struct {
	coop.Base
	ch   *coop.Channel[byte]
	data []byte
	i    int
}

const (
	writerBegin coop.Label = iota
	writerNext
)

func (r *channelWriterRoutine) Step() coop.Status {
	for {
		switch r.ResumeAt() {
		case writerBegin:
			if r.i >= len(r.data) {
				return r.End()
			}
			return r.Yield(writerNext)
		case writerNext:
			r.ch.Write(r.data[r.i])
			r.i++
			r.Resume(writerBegin)
			return coop.StatusYielding
		default:
			return r.End()
		}
	}
}

type channelReaderRoutine struct {
	coop.Base
	ch  *coop.Channel[byte]
	out *strings.Builder
}

const readerBegin coop.Label = iota

func (r *channelReaderRoutine) Step() coop.Status {
	for {
		switch r.ResumeAt() {
		case readerBegin:
			if r.Awaiting(r.ch.CanRead(), readerBegin) {
				return coop.StatusAwaiting
			}
			r.out.WriteByte(r.ch.Read())
			r.Resume(readerBegin)
			return coop.StatusYielding
		default:
			return r.End()
		}
	}
}

// Example_channelPipe reproduces spec §8 scenario 4: after enough Loop
// calls, the reader's output equals "Hi\n".
func Example_channelPipe() {
	clock := coop.NewFakeClock(0)
	s := coop.NewScheduler(coop.WithClock(clock))
	ch := coop.NewChannel[byte](4)
	var out strings.Builder

	w := &channelWriterRoutine{Base: coop.NewBase("writer", clock), ch: ch, data: []byte("Hi\n")}
	r := &channelReaderRoutine{Base: coop.NewBase("reader", clock), ch: ch, out: &out}
	_ = s.Register(w)
	_ = s.Register(r)
	_ = s.Setup()

	for i := 0; i < 40; i++ {
		_ = s.Loop()
	}

	fmt.Printf("%q\n", out.String())
	// Output:
	// "Hi\n"
}

// Example_channelOverflow reproduces spec §8 scenario 5 directly against
// Channel, without a scheduler: capacity 2, writes of 'a','b','c','d'
// without a reader running.
func Example_channelOverflow() {
	ch := coop.NewChannel[byte](2)
	results := []bool{ch.Write('a'), ch.Write('b'), ch.Write('c'), ch.Write('d')}
	fmt.Println(results, ch.Len())
	fmt.Println(string(ch.Read()), string(ch.Read()))
	// Output:
	// [true true false false] 2
	// a b
}

// countingYielderRoutine is a bare yielder that counts its own steps and
// ends on the Nth one, used by Example_termination (spec §8 scenario 6).
type countingYielderRoutine struct {
	coop.Base
	steps  int
	endsAt int
}

const countingBegin coop.Label = iota

func (r *countingYielderRoutine) Step() coop.Status {
	for {
		switch r.ResumeAt() {
		case countingBegin:
			r.steps++
			if r.endsAt > 0 && r.steps >= r.endsAt {
				return r.End()
			}
			return r.Yield(countingBegin)
		default:
			return r.End()
		}
	}
}

// Example_termination reproduces spec §8 scenario 6: among three routines
// X, Y, Z all yielding, Y issues END on its third step; after many further
// Loop calls, only X and Z keep stepping and Y's step count stays at 3.
func Example_termination() {
	clock := coop.NewFakeClock(0)
	s := coop.NewScheduler(coop.WithClock(clock))
	x := &countingYielderRoutine{Base: coop.NewBase("X", clock)}
	y := &countingYielderRoutine{Base: coop.NewBase("Y", clock), endsAt: 3}
	z := &countingYielderRoutine{Base: coop.NewBase("Z", clock)}
	_ = s.Register(x)
	_ = s.Register(y)
	_ = s.Register(z)
	_ = s.Setup()

	for i := 0; i < 60; i++ {
		_ = s.Loop()
	}

	fmt.Println(y.steps, y.Status())
	fmt.Println(x.steps > y.steps, z.steps > y.steps)
	// Output:
	// 3 Ended
	// true true
}
