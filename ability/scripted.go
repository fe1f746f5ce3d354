package ability

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/grapplinghook/hook"
	"github.com/milk9111/grapplinghook/hookable"
	"github.com/milk9111/grapplinghook/task"
)

// The script defines react(hook). It runs once the hook has stopped
// deploying and reads the outcome from the hook map.
const reactDispatchScript = `
react(__hook)
`

// Scripted fires the hook at any hookable and leaves the reaction to a
// tengo script.
type Scripted struct {
	Base

	compiled *tengo.Compiled
	target   hookable.Hookable
}

// NewScripted compiles src. The script must define a react function.
func NewScripted(cfg Config, src []byte) (*Scripted, error) {
	script := tengo.NewScript(append(append([]byte{}, src...), reactDispatchScript...))
	_ = script.Add("__hook", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("ability: compile %s: %w", cfg.Name, err)
	}
	return &Scripted{Base: newBase(cfg), compiled: compiled}, nil
}

func (s *Scripted) Activate(id hook.TargetID) bool {
	target, ok := s.resolve(id)
	if !ok || !s.arm(id) {
		return false
	}
	s.target = target

	h := s.cfg.Hook
	var seq *task.Sequence
	seq = task.Seq(
		task.Wait(s.cfg.AnimationTime),
		task.Do(s.fire),
		s.leftIdle(),
		guard(&seq, func() bool { return !h.IsIdle() }, s.startCooldown),
		s.whileDeployed(),
		task.Do(s.react),
		task.Until(h.IsIdle),
		task.Do(s.finish),
	)
	s.start(seq, s.finish)
	return true
}

func (s *Scripted) react() {
	if err := s.compiled.Set("__hook", s.hookObject()); err != nil {
		log.Printf("ability: %s: set hook: %v", s.cfg.Name, err)
		return
	}
	if err := s.compiled.Run(); err != nil {
		log.Printf("ability: %s: react: %v", s.cfg.Name, err)
		s.cfg.Hook.ResetHook()
	}
}

func (s *Scripted) finish() {
	s.startCooldown()
	s.unblock()
}

func (s *Scripted) hookObject() *tengo.ImmutableMap {
	h := s.cfg.Hook
	player := s.cfg.Player
	values := map[string]tengo.Object{
		"state":        &tengo.String{Value: h.State().String()},
		"was_attached": boolObject(h.WasAttachedBefore()),
		"grounded":     boolObject(player.IsOnGround()),
		"kind":         &tengo.String{Value: s.target.Kind().String()},
		"distance":     &tengo.Float{Value: player.Position().Distance(s.target.AnchorPosition())},
	}

	values["block"] = &tengo.UserFunction{Name: "block", Value: func(args ...tengo.Object) (tengo.Object, error) {
		s.block()
		return tengo.TrueValue, nil
	}}
	values["swing"] = &tengo.UserFunction{Name: "swing", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if !h.IsAttached() {
			return tengo.FalseValue, nil
		}
		h.StartSwinging()
		return boolObject(h.IsSwinging()), nil
	}}
	values["detach"] = &tengo.UserFunction{Name: "detach", Value: func(args ...tengo.Object) (tengo.Object, error) {
		delay := 0.0
		if len(args) > 0 {
			if v, ok := tengo.ToFloat64(args[0]); ok {
				delay = v
			}
		}
		h.DelayedDetach(delay)
		return tengo.TrueValue, nil
	}}
	values["launch"] = &tengo.UserFunction{Name: "launch", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if !h.IsAttached() {
			return tengo.FalseValue, nil
		}
		h.LaunchPlayer(cp.Vector{})
		return tengo.TrueValue, nil
	}}
	values["reset"] = &tengo.UserFunction{Name: "reset", Value: func(args ...tengo.Object) (tengo.Object, error) {
		h.ResetHook()
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}
