package shim

// Phase identifies one of the three hook lists of a shim.
type Phase string

const (
	PhasePre      Phase = "pre"
	PhaseOverride Phase = "override"
	PhasePost     Phase = "post"
)

// Phases lists the hook phases in execution order.
var Phases = []Phase{PhasePre, PhaseOverride, PhasePost}

// SubcommandHook is a command body scoped to an optional subcommand token.
type SubcommandHook struct {
	OnSubcommand *string  `yaml:"on_subcommand,omitempty"`
	Env          []string `yaml:"env,omitempty"`
	Run          string   `yaml:"run"`
}

// Matches reports whether the hook fires for the given first argument.
// firstArg is "" when the invocation has no arguments. A hook without
// OnSubcommand is a default hook and fires only in that case.
func (h SubcommandHook) Matches(firstArg string) bool {
	if h.OnSubcommand == nil {
		return firstArg == ""
	}
	return *h.OnSubcommand == firstArg
}

// Subcommand returns the subcommand token, or "" for a default hook.
func (h SubcommandHook) Subcommand() string {
	if h.OnSubcommand == nil {
		return ""
	}
	return *h.OnSubcommand
}

// Shim intercepts one program.
type Shim struct {
	Name     string           `yaml:"program"`
	Pre      []SubcommandHook `yaml:"pre,omitempty"`
	Override []SubcommandHook `yaml:"override,omitempty"`
	Post     []SubcommandHook `yaml:"post,omitempty"`
	Vars     []string         `yaml:"env,omitempty"`
}

func (s *Shim) Program() string                 { return s.Name }
func (s *Shim) PreHooks() []SubcommandHook      { return s.Pre }
func (s *Shim) OverrideHooks() []SubcommandHook { return s.Override }
func (s *Shim) PostHooks() []SubcommandHook     { return s.Post }

// Env returns the KEY=VALUE assignments applied to every process of the shim.
func (s *Shim) Env() []string { return s.Vars }

// Hooks returns the hook list for a phase.
func (s *Shim) Hooks(p Phase) []SubcommandHook {
	switch p {
	case PhasePre:
		return s.Pre
	case PhaseOverride:
		return s.Override
	case PhasePost:
		return s.Post
	}
	return nil
}

// Select returns the hooks of a phase that match firstArg, in list order.
func (s *Shim) Select(p Phase, firstArg string) []SubcommandHook {
	var matched []SubcommandHook
	for _, h := range s.Hooks(p) {
		if h.Matches(firstArg) {
			matched = append(matched, h)
		}
	}
	return matched
}

// HookCount returns the number of hooks across all phases.
func (s *Shim) HookCount() int {
	return len(s.Pre) + len(s.Override) + len(s.Post)
}
