package trait_test

import (
	"testing"

	"github.com/arthur-debert/traitmix/pkg/capability"
	"github.com/arthur-debert/traitmix/pkg/errors"
	"github.com/arthur-debert/traitmix/pkg/object"
	"github.com/arthur-debert/traitmix/pkg/trait"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(self *object.Instance, args ...any) any { return nil }

func constant(v any) object.Method {
	return func(self *object.Instance, args ...any) any { return v }
}

func newTodoClass(t *testing.T) *object.Class {
	t.Helper()
	todo := object.NewClass("Todo", nil)
	require.NoError(t, todo.Define("toHTML", func(self *object.Instance, args ...any) any {
		title, _ := self.Get("title")
		return "<li>" + title.(string) + "</li>"
	}))
	return todo
}

func TestNew(t *testing.T) {
	t.Run("constructs a valid unit", func(t *testing.T) {
		u, err := trait.New(trait.KindDefiner, object.BehaviorMap{
			"setColourRGB": noop,
			"getColourRGB": constant("#ffffff"),
		}, trait.WithName("Coloured"))
		require.NoError(t, err)

		assert.Equal(t, "Coloured", u.Name())
		assert.Equal(t, trait.KindDefiner, u.Kind())
		assert.Equal(t, []string{"getColourRGB", "setColourRGB"}, u.Methods())
		assert.False(t, u.Tag().IsZero())
	})

	t.Run("derives a name from kind and keys", func(t *testing.T) {
		u, err := trait.New(trait.KindDefiner, object.BehaviorMap{"b": noop, "a": noop})
		require.NoError(t, err)
		assert.Equal(t, "definer[a,b]", u.Name())
	})

	t.Run("rejects empty behavior map", func(t *testing.T) {
		_, err := trait.New(trait.KindDefiner, object.BehaviorMap{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnitInvalid))
	})

	t.Run("rejects nil implementation", func(t *testing.T) {
		_, err := trait.New(trait.KindDefiner, object.BehaviorMap{"broken": nil})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnitInvalid))
		assert.Equal(t, "broken", errors.GetErrorDetails(err)["key"])
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := trait.New(trait.Kind("mixin"), object.BehaviorMap{"x": noop})
		assert.True(t, errors.IsErrorCode(err, errors.ErrKindNotFound))
	})

	t.Run("each unit mints a distinct tag", func(t *testing.T) {
		a, err := trait.Definer(object.BehaviorMap{"x": noop})
		require.NoError(t, err)
		b, err := trait.Definer(object.BehaviorMap{"x": noop})
		require.NoError(t, err)
		assert.NotEqual(t, a.Tag(), b.Tag())
	})

	t.Run("later mutation of the input map is not observed", func(t *testing.T) {
		behavior := object.BehaviorMap{"x": noop}
		u, err := trait.Definer(behavior)
		require.NoError(t, err)

		behavior["sneaked"] = noop
		assert.Equal(t, []string{"x"}, u.Methods())
	})
}

func TestSharedBehavior(t *testing.T) {
	u, err := trait.Definer(object.BehaviorMap{"x": noop},
		trait.WithShared("palette", []string{"#ff0000", "#00ff00"}),
		trait.WithShared("version", 2),
		trait.WithHiddenShared("cache", map[string]any{}),
	)
	require.NoError(t, err)

	t.Run("entries resolve on the unit itself", func(t *testing.T) {
		palette, ok := u.Shared("palette")
		require.True(t, ok)
		assert.Equal(t, []string{"#ff0000", "#00ff00"}, palette)
	})

	t.Run("hidden entries resolve but do not enumerate", func(t *testing.T) {
		_, ok := u.Shared("cache")
		assert.True(t, ok)
		assert.Equal(t, []string{"palette", "version"}, u.SharedNames())
	})

	t.Run("missing entries report false", func(t *testing.T) {
		_, ok := u.Shared("missing")
		assert.False(t, ok)
	})

	t.Run("entries never migrate to the target class", func(t *testing.T) {
		target := object.NewClass("Target", nil)
		_, err := u.Apply(target)
		require.NoError(t, err)
		assert.False(t, target.Responds("palette"))
		assert.False(t, target.Responds("cache"))
	})
}

func TestDefinerApply(t *testing.T) {
	caps := capability.NewRegistry()
	todo := newTodoClass(t)

	coloured, err := trait.Definer(object.BehaviorMap{
		"setColourRGB": func(self *object.Instance, args ...any) any {
			self.Set("colour", args[0])
			return nil
		},
		"getColourRGB": func(self *object.Instance, args ...any) any {
			colour, _ := self.Get("colour")
			return colour
		},
	}, trait.WithName("Coloured"), trait.WithCapabilityRegistry(caps))
	require.NoError(t, err)

	got, err := coloured.Apply(todo)
	require.NoError(t, err)

	t.Run("returns the same mutated reference", func(t *testing.T) {
		assert.Same(t, todo, got)
	})

	t.Run("installs every key unchanged", func(t *testing.T) {
		inst := todo.New()
		inst.MustCall("setColourRGB", "#336699")
		assert.Equal(t, "#336699", inst.MustCall("getColourRGB"))
	})

	t.Run("instances gain the capability", func(t *testing.T) {
		assert.True(t, coloured.Implements(todo.New()))
		assert.True(t, trait.HasCapability(coloured, todo.New()))
	})

	t.Run("unrelated instances lack the capability", func(t *testing.T) {
		note := object.NewClass("Note", nil)
		assert.False(t, coloured.Implements(note.New()))
	})
}

func TestDefinerConflict(t *testing.T) {
	caps := capability.NewRegistry()
	todo := newTodoClass(t)

	u, err := trait.Definer(object.BehaviorMap{
		"toHTML":   constant("clash"),
		"setTitle": noop,
	}, trait.WithName("Clashing"), trait.WithCapabilityRegistry(caps))
	require.NoError(t, err)

	before := todo.MethodNames()
	result, applyErr := u.Apply(todo)

	t.Run("fails with ABSENCE_VIOLATION naming the key", func(t *testing.T) {
		require.Error(t, applyErr)
		assert.Nil(t, result)
		assert.True(t, errors.IsErrorCode(applyErr, errors.ErrAbsenceViolation))
		assert.True(t, errors.IsConflict(applyErr))

		details := errors.GetErrorDetails(applyErr)
		assert.Equal(t, "toHTML", details["key"])
		assert.Equal(t, "Clashing", details["unit"])
		assert.Equal(t, "definer", details["kind"])
		assert.Equal(t, "Todo", details["class"])
	})

	t.Run("target method table is unchanged", func(t *testing.T) {
		assert.Equal(t, before, todo.MethodNames())
		assert.False(t, todo.Responds("setTitle"))
	})

	t.Run("no capability is recorded", func(t *testing.T) {
		assert.False(t, u.Implements(todo.New()))
	})
}

func TestOverriderApply(t *testing.T) {
	caps := capability.NewRegistry()
	todo := newTodoClass(t)

	deadline, err := trait.Overrider(object.BehaviorMap{
		"toHTML": func(self *object.Instance, args ...any) any {
			original := args[0].(object.Bound)
			return "<span class=\"overdue\">" + original(args[1:]...).(string) + "</span>"
		},
	}, trait.WithName("DeadlineSensitive"), trait.WithCapabilityRegistry(caps))
	require.NoError(t, err)

	_, err = deadline.Apply(todo)
	require.NoError(t, err)

	t.Run("new implementation receives the bound original", func(t *testing.T) {
		inst := todo.New()
		inst.Set("title", "ship it")
		assert.Equal(t, "<span class=\"overdue\"><li>ship it</li></span>", inst.MustCall("toHTML"))
	})

	t.Run("missing key fails with PRESENCE_VIOLATION", func(t *testing.T) {
		bare := object.NewClass("Bare", nil)
		u, err := trait.Overrider(object.BehaviorMap{"toHTML": noop},
			trait.WithCapabilityRegistry(caps))
		require.NoError(t, err)

		_, applyErr := u.Apply(bare)
		require.Error(t, applyErr)
		assert.True(t, errors.IsErrorCode(applyErr, errors.ErrPresenceViolation))
		assert.Equal(t, "toHTML", errors.GetErrorDetails(applyErr)["key"])
	})

	t.Run("inherited method counts as present", func(t *testing.T) {
		child := object.NewClass("ChildTodo", newTodoClass(t))
		u, err := trait.Overrider(object.BehaviorMap{
			"toHTML": func(self *object.Instance, args ...any) any {
				original := args[0].(object.Bound)
				return "wrapped:" + original(args[1:]...).(string)
			},
		}, trait.WithCapabilityRegistry(caps))
		require.NoError(t, err)

		_, applyErr := u.Apply(child)
		require.NoError(t, applyErr)

		inst := child.New()
		inst.Set("title", "x")
		assert.Equal(t, "wrapped:<li>x</li>", inst.MustCall("toHTML"))
	})
}

func TestPrependerApply(t *testing.T) {
	caps := capability.NewRegistry()

	newGuarded := func(t *testing.T, guardResult any) *object.Instance {
		t.Helper()
		cls := object.NewClass("Guarded", nil)
		require.NoError(t, cls.Define("save", func(self *object.Instance, args ...any) any {
			self.Set("saved", true)
			return "saved"
		}))

		u, err := trait.Prepender(object.BehaviorMap{
			"save": func(self *object.Instance, args ...any) any {
				self.Set("guardRan", true)
				return guardResult
			},
		}, trait.WithCapabilityRegistry(caps))
		require.NoError(t, err)

		_, err = u.Apply(cls)
		require.NoError(t, err)
		return cls.New()
	}

	t.Run("nil guard result lets the original run", func(t *testing.T) {
		inst := newGuarded(t, nil)
		assert.Equal(t, "saved", inst.MustCall("save"))
		_, saved := inst.Get("saved")
		assert.True(t, saved)
	})

	t.Run("truthy guard result lets the original run", func(t *testing.T) {
		inst := newGuarded(t, "go ahead")
		assert.Equal(t, "saved", inst.MustCall("save"))
	})

	t.Run("falsy guard result skips the original and returns nil", func(t *testing.T) {
		inst := newGuarded(t, false)
		assert.Nil(t, inst.MustCall("save"))

		_, guardRan := inst.Get("guardRan")
		assert.True(t, guardRan)
		_, saved := inst.Get("saved")
		assert.False(t, saved)
	})

	t.Run("zero is falsy too", func(t *testing.T) {
		inst := newGuarded(t, 0)
		assert.Nil(t, inst.MustCall("save"))
	})

	t.Run("guard sees the original arguments", func(t *testing.T) {
		cls := object.NewClass("Echo", nil)
		require.NoError(t, cls.Define("echo", func(self *object.Instance, args ...any) any {
			return args[0]
		}))

		var seen []any
		u, err := trait.Prepender(object.BehaviorMap{
			"echo": func(self *object.Instance, args ...any) any {
				seen = args
				return nil
			},
		}, trait.WithCapabilityRegistry(caps))
		require.NoError(t, err)
		_, err = u.Apply(cls)
		require.NoError(t, err)

		assert.Equal(t, "hello", cls.New().MustCall("echo", "hello"))
		assert.Equal(t, []any{"hello"}, seen)
	})
}

func TestAppenderApply(t *testing.T) {
	caps := capability.NewRegistry()

	cls := object.NewClass("Audited", nil)
	require.NoError(t, cls.Define("withdraw", func(self *object.Instance, args ...any) any {
		return args[0].(int) * -1
	}))

	var audit []any
	u, err := trait.Appender(object.BehaviorMap{
		"withdraw": func(self *object.Instance, args ...any) any {
			audit = append(audit, args[0])
			return "this result is discarded"
		},
	}, trait.WithCapabilityRegistry(caps))
	require.NoError(t, err)

	_, err = u.Apply(cls)
	require.NoError(t, err)

	inst := cls.New()

	t.Run("original result is returned, hook result discarded", func(t *testing.T) {
		assert.Equal(t, -50, inst.MustCall("withdraw", 50))
	})

	t.Run("hook runs after with the same arguments", func(t *testing.T) {
		assert.Equal(t, []any{50}, audit)
		inst.MustCall("withdraw", 20)
		assert.Equal(t, []any{50, 20}, audit)
	})
}

func TestApplyAtomicity(t *testing.T) {
	// One key passes the presence check, another fails. The passing key
	// must not be mutated.
	caps := capability.NewRegistry()

	cls := object.NewClass("Partial", nil)
	require.NoError(t, cls.Define("present", constant("untouched")))

	u, err := trait.Overrider(object.BehaviorMap{
		"present": func(self *object.Instance, args ...any) any { return "mutated" },
		"zmissing": func(self *object.Instance, args ...any) any { return nil },
	}, trait.WithCapabilityRegistry(caps))
	require.NoError(t, err)

	_, applyErr := u.Apply(cls)
	require.Error(t, applyErr)
	assert.True(t, errors.IsErrorCode(applyErr, errors.ErrPresenceViolation))

	assert.Equal(t, "untouched", cls.New().MustCall("present"))
	assert.Equal(t, []string{"present"}, cls.MethodNames())
}

func TestApplyReportsFirstViolationInKeyOrder(t *testing.T) {
	caps := capability.NewRegistry()
	cls := object.NewClass("Empty", nil)

	u, err := trait.Overrider(object.BehaviorMap{
		"zebra": noop,
		"alpha": noop,
	}, trait.WithCapabilityRegistry(caps))
	require.NoError(t, err)

	_, applyErr := u.Apply(cls)
	require.Error(t, applyErr)
	assert.Equal(t, "alpha", errors.GetErrorDetails(applyErr)["key"])
}

func TestApplyNilTarget(t *testing.T) {
	u, err := trait.Definer(object.BehaviorMap{"x": noop})
	require.NoError(t, err)

	_, applyErr := u.Apply(nil)
	assert.True(t, errors.IsErrorCode(applyErr, errors.ErrInvalidInput))
}

func TestUnitAppliesToManyClasses(t *testing.T) {
	caps := capability.NewRegistry()

	u, err := trait.Definer(object.BehaviorMap{"serialize": constant("{}")},
		trait.WithName("Serializable"), trait.WithCapabilityRegistry(caps))
	require.NoError(t, err)

	// Unrelated classes, same unit
	todo := object.NewClass("Todo", nil)
	invoice := object.NewClass("Invoice", nil)

	_, err = u.Apply(todo)
	require.NoError(t, err)
	_, err = u.Apply(invoice)
	require.NoError(t, err)

	assert.True(t, u.Implements(todo.New()))
	assert.True(t, u.Implements(invoice.New()))
	assert.Equal(t, "{}", invoice.New().MustCall("serialize"))
}

func TestDerive(t *testing.T) {
	caps := capability.NewRegistry()
	todo := newTodoClass(t)

	u, err := trait.Definer(object.BehaviorMap{"getColourRGB": constant("#000000")},
		trait.WithCapabilityRegistry(caps))
	require.NoError(t, err)

	derived, err := u.Derive(todo)
	require.NoError(t, err)

	assert.NotSame(t, todo, derived)
	assert.True(t, derived.Responds("getColourRGB"))
	assert.False(t, todo.Responds("getColourRGB"))

	assert.True(t, u.Implements(derived.New()))
	assert.False(t, u.Implements(todo.New()))
}

func TestCanApply(t *testing.T) {
	caps := capability.NewRegistry()
	todo := newTodoClass(t)

	clash, err := trait.Definer(object.BehaviorMap{"toHTML": noop},
		trait.WithCapabilityRegistry(caps))
	require.NoError(t, err)
	clean, err := trait.Definer(object.BehaviorMap{"setColourRGB": noop},
		trait.WithCapabilityRegistry(caps))
	require.NoError(t, err)

	assert.Error(t, clash.CanApply(todo))
	assert.NoError(t, clean.CanApply(todo))

	// CanApply never mutates
	assert.False(t, todo.Responds("setColourRGB"))
	assert.False(t, clean.Implements(todo.New()))
}
