package unit

import "github.com/udisondev/auracore/internal/game/aura"

// AuraEffect is one effect slot of an application.
type AuraEffect struct {
	index  int
	info   *aura.EffectInfo
	app    *AuraApplication
	amount int32

	periodTimer int32
	ticks       int32
}

func (e *AuraEffect) Index() int                    { return e.index }
func (e *AuraEffect) Info() *aura.EffectInfo        { return e.info }
func (e *AuraEffect) Type() aura.EffectType         { return e.info.Type }
func (e *AuraEffect) Application() *AuraApplication { return e.app }
func (e *AuraEffect) Aura() *Aura                   { return e.app.aura }
func (e *AuraEffect) Target() *Unit                 { return e.app.target }
func (e *AuraEffect) Amount() int32                 { return e.amount }

// Ticks returns how many periodic ticks fired so far.
func (e *AuraEffect) Ticks() int32 { return e.ticks }

// update advances the periodic timer and fires due ticks.
func (e *AuraEffect) update(deltaMs int32) {
	if !e.info.IsPeriodic() {
		return
	}
	h := handlerFor(e.info.Type)
	e.periodTimer += deltaMs
	for e.periodTimer >= e.info.PeriodMs {
		e.periodTimer -= e.info.PeriodMs
		e.ticks++
		if h.Periodic != nil {
			h.Periodic(e)
		}
		if e.app.removed || !e.app.appliedMask.Has(e.index) {
			return
		}
	}
}
