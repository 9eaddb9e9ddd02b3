package morph

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for mapping events. Plan faults and skipped fields never fail a
// mapping call; hooking these signals is the only way to observe them.
var (
	SignalPairPlanned     = capitan.NewSignal("morph.pair.planned", "Binding plan derived for a type pair")
	SignalPairCompiled    = capitan.NewSignal("morph.pair.compiled", "Conversion function compiled for a type pair")
	SignalPropertySkipped = capitan.NewSignal("morph.property.skipped", "Target field left unbound during planning")
	SignalPlanFault       = capitan.NewSignal("morph.plan.fault", "Planning one field failed; zero-value binding substituted")
)

// Keys for typed event data.
var (
	KeySourceType   = capitan.NewStringKey("source_type")
	KeyTargetType   = capitan.NewStringKey("target_type")
	KeyProperty     = capitan.NewStringKey("property")
	KeyReason       = capitan.NewStringKey("reason")
	KeyKind         = capitan.NewStringKey("kind")
	KeyBindingCount = capitan.NewIntKey("binding_count")
	KeyDuration     = capitan.NewDurationKey("duration")
	KeyError        = capitan.NewErrorKey("error")
)

// Compiled-function kinds reported via KeyKind.
const (
	kindConstructor = "constructor"
	kindMutator     = "mutator"
)

// emitPairPlanned emits an event when a binding plan is derived.
func emitPairPlanned(ctx context.Context, pair TypePair, bindings int, duration time.Duration) {
	capitan.Emit(ctx, SignalPairPlanned,
		KeySourceType.Field(pair.Src.String()),
		KeyTargetType.Field(pair.Dst.String()),
		KeyBindingCount.Field(bindings),
		KeyDuration.Field(duration),
	)
}

// emitPairCompiled emits an event when a conversion function is compiled.
func emitPairCompiled(ctx context.Context, pair TypePair, kind string, bindings int, duration time.Duration) {
	capitan.Emit(ctx, SignalPairCompiled,
		KeySourceType.Field(pair.Src.String()),
		KeyTargetType.Field(pair.Dst.String()),
		KeyKind.Field(kind),
		KeyBindingCount.Field(bindings),
		KeyDuration.Field(duration),
	)
}

// emitPropertySkipped emits an event when a target field gets no binding.
func emitPropertySkipped(ctx context.Context, pair TypePair, property, reason string) {
	capitan.Emit(ctx, SignalPropertySkipped,
		KeySourceType.Field(pair.Src.String()),
		KeyTargetType.Field(pair.Dst.String()),
		KeyProperty.Field(property),
		KeyReason.Field(reason),
	)
}

// emitPlanFault emits an event when planning one field fails and a
// zero-value binding is substituted for it.
func emitPlanFault(ctx context.Context, pair TypePair, property string, err error) {
	capitan.Error(ctx, SignalPlanFault,
		KeySourceType.Field(pair.Src.String()),
		KeyTargetType.Field(pair.Dst.String()),
		KeyProperty.Field(property),
		KeyError.Field(err),
	)
}
