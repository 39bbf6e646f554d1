// Package assignment contiene los tipos puros de la reconciliación de asignaciones:
// el diff de conjuntos y las operaciones que de él se derivan.
package assignment

import "fmt"

// Acciones de una operación sobre el puerto de asignaciones.
const (
	ActionAssign = "ASSIGN"
	ActionRemove = "REMOVE"
)

// Operation es una llamada individual al puerto de asignaciones.
// SubjectID es el usuario (o el área en AREA_WAREHOUSE) y EntityID el área o bodega.
type Operation struct {
	Kind      string
	Action    string
	SubjectID string
	EntityID  string
}

// Key identifica la tupla (tenant, tipo, sujeto, entidad) que debe serializarse.
func (o Operation) Key(tenantID string) string {
	return tenantID + "|" + o.Kind + "|" + o.SubjectID + "|" + o.EntityID
}

func (o Operation) String() string {
	return fmt.Sprintf("%s %s %s->%s", o.Action, o.Kind, o.SubjectID, o.EntityID)
}

// Operations expande un diff en operaciones: primero las remociones, luego las altas.
func Operations(kind, subjectID string, d Diff[string]) []Operation {
	ops := make([]Operation, 0, d.Len())
	for _, id := range d.ToRemove {
		ops = append(ops, Operation{Kind: kind, Action: ActionRemove, SubjectID: subjectID, EntityID: id})
	}
	for _, id := range d.ToAdd {
		ops = append(ops, Operation{Kind: kind, Action: ActionAssign, SubjectID: subjectID, EntityID: id})
	}
	return ops
}

// AppliedOperation operación aceptada por el puerto. NoOp=true si el puerto respondió que
// ya estaba en el estado pedido (duplicado activo o asignación ya revocada).
type AppliedOperation struct {
	Operation
	NoOp bool
}

// FailedOperation operación que el puerto rechazó.
type FailedOperation struct {
	Operation
	Err error
}

// Resultados globales de una reconciliación.
const (
	OutcomeNoChanges = "NO_CHANGES"
	OutcomeApplied   = "APPLIED"
	OutcomePartial   = "PARTIAL"
	OutcomeFailed    = "FAILED"
)

// Result resumen itemizado de una reconciliación.
type Result struct {
	Applied []AppliedOperation
	Failed  []FailedOperation
}

// Outcome distingue "aplicado por completo", "parcial" y "fallido".
func (r *Result) Outcome() string {
	switch {
	case r == nil || (len(r.Applied) == 0 && len(r.Failed) == 0):
		return OutcomeNoChanges
	case len(r.Failed) == 0:
		return OutcomeApplied
	case len(r.Applied) == 0:
		return OutcomeFailed
	default:
		return OutcomePartial
	}
}

// Changed devuelve, como diff, las operaciones de kind/subject que cambiaron el estado
// (aceptadas y no NoOp). Apply(previous, Changed(...)) es el estado real tras la reconciliación.
func (r *Result) Changed(kind, subjectID string) Diff[string] {
	var d Diff[string]
	if r == nil {
		return d
	}
	for _, op := range r.Applied {
		if op.NoOp || op.Kind != kind || op.SubjectID != subjectID {
			continue
		}
		if op.Action == ActionAssign {
			d.ToAdd = append(d.ToAdd, op.EntityID)
		} else {
			d.ToRemove = append(d.ToRemove, op.EntityID)
		}
	}
	return d
}
