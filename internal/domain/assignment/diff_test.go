package assignment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-admin/internal/domain/assignment"
	"github.com/jhoicas/inventario-admin/internal/domain/entity"
)

func TestDiffSets_AgregaYQuita(t *testing.T) {
	d := assignment.DiffSets([]string{"A1", "A2"}, []string{"A2", "A3"})
	assert.Equal(t, []string{"A3"}, d.ToAdd)
	assert.Equal(t, []string{"A1"}, d.ToRemove)
	assert.Equal(t, 2, d.Len())
}

func TestDiffSets_MismoConjunto_Vacio(t *testing.T) {
	d := assignment.DiffSets([]string{"A1", "A2", "A2"}, []string{"A2", "A1"})
	assert.True(t, d.Empty())
	assert.True(t, assignment.DiffSets([]string{"x", "y"}, []string{"y", "x", "x"}).Empty())
}

func TestDiffSets_NoDependeDelOrden(t *testing.T) {
	a := assignment.DiffSets([]string{"A1", "A2", "A3"}, []string{"A4", "A3"})
	b := assignment.DiffSets([]string{"A3", "A2", "A1"}, []string{"A3", "A4"})
	assert.ElementsMatch(t, a.ToAdd, b.ToAdd)
	assert.ElementsMatch(t, a.ToRemove, b.ToRemove)
}

func TestDiffSets_Nil(t *testing.T) {
	d := assignment.DiffSets[string](nil, []string{"W1", "W1"})
	assert.Equal(t, []string{"W1"}, d.ToAdd)
	assert.Empty(t, d.ToRemove)

	d = assignment.DiffSets([]string{"W1"}, nil)
	assert.Equal(t, []string{"W1"}, d.ToRemove)
}

func TestApply_RecuperaElDeseado(t *testing.T) {
	prev := []string{"A1", "A2"}
	want := []string{"A2", "A3"}
	got := assignment.Apply(prev, assignment.DiffSets(prev, want))
	assert.ElementsMatch(t, want, got)
}

func TestOperations_PrimeroRemociones(t *testing.T) {
	d := assignment.DiffSets([]string{"A1"}, []string{"A2"})
	ops := assignment.Operations(entity.AssignmentAreaManager, "u1", d)
	assert.Len(t, ops, 2)
	assert.Equal(t, assignment.ActionRemove, ops[0].Action)
	assert.Equal(t, "A1", ops[0].EntityID)
	assert.Equal(t, assignment.ActionAssign, ops[1].Action)
}

func TestResult_Outcome(t *testing.T) {
	op := assignment.Operation{Kind: entity.AssignmentAreaManager, Action: assignment.ActionAssign, SubjectID: "u1", EntityID: "A1"}

	var empty *assignment.Result
	assert.Equal(t, assignment.OutcomeNoChanges, empty.Outcome())

	applied := &assignment.Result{Applied: []assignment.AppliedOperation{{Operation: op}}}
	assert.Equal(t, assignment.OutcomeApplied, applied.Outcome())

	partial := &assignment.Result{
		Applied: []assignment.AppliedOperation{{Operation: op}},
		Failed:  []assignment.FailedOperation{{Operation: op}},
	}
	assert.Equal(t, assignment.OutcomePartial, partial.Outcome())

	failed := &assignment.Result{Failed: []assignment.FailedOperation{{Operation: op}}}
	assert.Equal(t, assignment.OutcomeFailed, failed.Outcome())
}

func TestResult_Changed_IgnoraNoOp(t *testing.T) {
	res := &assignment.Result{Applied: []assignment.AppliedOperation{
		{Operation: assignment.Operation{Kind: entity.AssignmentAreaManager, Action: assignment.ActionAssign, SubjectID: "u1", EntityID: "A1"}},
		{Operation: assignment.Operation{Kind: entity.AssignmentAreaManager, Action: assignment.ActionAssign, SubjectID: "u1", EntityID: "A2"}, NoOp: true},
		{Operation: assignment.Operation{Kind: entity.AssignmentWarehouseSupervisor, Action: assignment.ActionRemove, SubjectID: "u1", EntityID: "W1"}},
	}}
	areas := res.Changed(entity.AssignmentAreaManager, "u1")
	assert.Equal(t, []string{"A1"}, areas.ToAdd)
	assert.Empty(t, areas.ToRemove)

	wh := res.Changed(entity.AssignmentWarehouseSupervisor, "u1")
	assert.Equal(t, []string{"W1"}, wh.ToRemove)
}

func TestOperationKey_IncluyeTenant(t *testing.T) {
	op := assignment.Operation{Kind: entity.AssignmentAreaManager, Action: assignment.ActionAssign, SubjectID: "u1", EntityID: "A1"}
	remove := op
	remove.Action = assignment.ActionRemove

	assert.Equal(t, op.Key("t1"), remove.Key("t1"), "alta y baja de la misma tupla comparten llave")
	assert.NotEqual(t, op.Key("t1"), op.Key("t2"))
}
