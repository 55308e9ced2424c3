package router

import (
	"context"
	"strings"
	"testing"

	"argument_negotiation_bot/pkg/core/chat"
	"argument_negotiation_bot/pkg/core/convo"
	"argument_negotiation_bot/pkg/core/skills"
)

// fakeSkill records how it was invoked.
type fakeSkill struct {
	name    string
	keyword string
	started int
	resumed int
	next    *convo.Continuation
}

func (f *fakeSkill) Name() string    { return f.name }
func (f *fakeSkill) Keyword() string { return f.keyword }

func (f *fakeSkill) Start(ctx context.Context, input string, out chat.Emitter) (*convo.Continuation, error) {
	f.started++
	out.Emit(f.name + " started")
	return f.next, nil
}

func (f *fakeSkill) Resume(ctx context.Context, c *convo.Continuation, input string, out chat.Emitter) (*convo.Continuation, error) {
	f.resumed++
	out.Emit(f.name + " resumed at " + c.Stage)
	return nil, nil
}

func newTestDispatcher() (*Dispatcher, *fakeSkill, *fakeSkill, convo.Store) {
	debate := &fakeSkill{name: "debate", keyword: "debate"}
	salary := &fakeSkill{name: "salary", keyword: "salary"}
	convos := convo.NewMemoryStore()
	d := NewDispatcher([]skills.Skill{debate, salary}, convos)
	return d, debate, salary, convos
}

func TestDispatchByKeyword(t *testing.T) {
	d, debate, salary, _ := newTestDispatcher()

	buf := &chat.BufferEmitter{}
	d.Dispatch(context.Background(), "c1", "let's Debate the topic", buf)

	if debate.started != 1 || salary.started != 0 {
		t.Errorf("dispatch counts: debate=%d salary=%d", debate.started, salary.started)
	}
	if !strings.Contains(buf.Joined(), "debate started") {
		t.Errorf("handler output missing: %q", buf.Joined())
	}
}

func TestDispatchOrderFirstMatchWins(t *testing.T) {
	d, debate, salary, _ := newTestDispatcher()

	// Both keywords present: declaration order decides.
	d.Dispatch(context.Background(), "c1", "debate my salary", &chat.BufferEmitter{})
	if debate.started != 1 || salary.started != 0 {
		t.Errorf("first-match-wins violated: debate=%d salary=%d", debate.started, salary.started)
	}
}

func TestDispatchFallback(t *testing.T) {
	d, _, _, _ := newTestDispatcher()

	buf := &chat.BufferEmitter{}
	d.Dispatch(context.Background(), "c1", "tell me a joke", buf)
	if buf.Joined() != chat.MsgNotUnderstood {
		t.Errorf("fallback output = %q", buf.Joined())
	}
}

func TestDispatchValidation(t *testing.T) {
	d, debate, _, _ := newTestDispatcher()

	buf := &chat.BufferEmitter{}
	d.Dispatch(context.Background(), "c1", "   ", buf)
	if buf.Joined() != "Input cannot be empty." {
		t.Errorf("empty input output = %q", buf.Joined())
	}

	buf = &chat.BufferEmitter{}
	d.Dispatch(context.Background(), "c1", "debate "+strings.Repeat("x", 2000), buf)
	if !strings.Contains(buf.Joined(), "1500") {
		t.Errorf("over-long input output = %q", buf.Joined())
	}
	if debate.started != 0 {
		t.Error("validation must reject before routing")
	}
}

func TestPendingContinuationWinsOverKeyword(t *testing.T) {
	d, debate, salary, convos := newTestDispatcher()
	ctx := context.Background()

	convos.Put(ctx, &convo.Continuation{
		ConversationID: "c1",
		Skill:          "salary",
		Stage:          "await_proposal",
	})

	buf := &chat.BufferEmitter{}
	d.Dispatch(ctx, "c1", "debate 100000", buf)

	if salary.resumed != 1 {
		t.Errorf("pending continuation not resumed (resumed=%d)", salary.resumed)
	}
	if debate.started != 0 {
		t.Error("keyword routing ran despite pending continuation")
	}
	if !strings.Contains(buf.Joined(), "salary resumed at await_proposal") {
		t.Errorf("resume output = %q", buf.Joined())
	}

	// The continuation was consumed; the same message now routes by keyword.
	d.Dispatch(ctx, "c1", "debate 100000", &chat.BufferEmitter{})
	if debate.started != 1 {
		t.Error("consumed continuation still capturing messages")
	}
}

func TestContinuationReturnedBySkillIsPersisted(t *testing.T) {
	d, debate, _, convos := newTestDispatcher()
	ctx := context.Background()

	debate.next = &convo.Continuation{Skill: "debate", Stage: "await_side"}
	d.Dispatch(ctx, "c9", "debate something", &chat.BufferEmitter{})

	pending, err := convos.Take(ctx, "c9")
	if err != nil {
		t.Fatalf("Take failed: %v", err)
	}
	if pending == nil || pending.Stage != "await_side" || pending.ConversationID != "c9" {
		t.Fatalf("persisted continuation = %+v", pending)
	}
}

func TestDispatchRecoversFromPanic(t *testing.T) {
	convos := convo.NewMemoryStore()
	d := NewDispatcher([]skills.Skill{&panickySkill{}}, convos)

	buf := &chat.BufferEmitter{}
	d.Dispatch(context.Background(), "c1", "boom please", buf)
	if !strings.Contains(buf.Joined(), chat.MsgUnexpected) {
		t.Errorf("panic output = %q", buf.Joined())
	}
}

type panickySkill struct{}

func (p *panickySkill) Name() string    { return "boom" }
func (p *panickySkill) Keyword() string { return "boom" }
func (p *panickySkill) Start(ctx context.Context, input string, out chat.Emitter) (*convo.Continuation, error) {
	panic("handler bug")
}
func (p *panickySkill) Resume(ctx context.Context, c *convo.Continuation, input string, out chat.Emitter) (*convo.Continuation, error) {
	panic("handler bug")
}

func TestValidateTrims(t *testing.T) {
	got, err := Validate("  debate x  ", DefaultMaxLen)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if got != "debate x" {
		t.Errorf("Validate = %q", got)
	}
}
