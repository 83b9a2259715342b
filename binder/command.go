package binder

import (
	"form-binder/node"
	"form-binder/record"
)

// Command is an operation executed on a binder through a Registry. The set
// of commands is closed.
type Command interface {
	apply(b *Binder) (Result, error)
}

// Result is the outcome of a command on one binder. Record is set by
// ExtractCommand, OK by the commands answering a question, Instances by
// the collection commands.
type Result struct {
	Binder    *Binder
	Record    record.Record
	OK        bool
	Instances []*node.Node
}

// FillCommand fills the binder with Record.
type FillCommand struct {
	Record record.Record
}

func (c FillCommand) apply(b *Binder) (Result, error) {
	b.Fill(c.Record)
	return Result{Binder: b, OK: true}, nil
}

// ExtractCommand extracts the current record. OK is false when the record
// is nil because of invalid fields.
type ExtractCommand struct {
	IgnoreInvalid bool
}

func (c ExtractCommand) apply(b *Binder) (Result, error) {
	rec := b.Extract(c.IgnoreInvalid)
	return Result{Binder: b, Record: rec, OK: rec != nil}, nil
}

// ClearCommand clears the fields and collections.
type ClearCommand struct{}

func (ClearCommand) apply(b *Binder) (Result, error) {
	b.Clear()
	return Result{Binder: b, OK: true}, nil
}

// ResetCommand fills the binder with an empty record.
type ResetCommand struct{}

func (ResetCommand) apply(b *Binder) (Result, error) {
	b.Reset()
	return Result{Binder: b, OK: true}, nil
}

// EqualsCommand compares Record with the current state.
type EqualsCommand struct {
	Record  record.Record
	IDField string
}

func (c EqualsCommand) apply(b *Binder) (Result, error) {
	return Result{Binder: b, OK: b.Equals(c.Record, c.IDField)}, nil
}

// ChangedCommand asks whether any field changed.
type ChangedCommand struct{}

func (ChangedCommand) apply(b *Binder) (Result, error) {
	return Result{Binder: b, OK: b.Changed()}, nil
}

// ResetChangedCommand re-baselines the change tracker.
type ResetChangedCommand struct{}

func (ResetChangedCommand) apply(b *Binder) (Result, error) {
	b.ResetChanged()
	return Result{Binder: b, OK: true}, nil
}

// ApplyConditionsCommand re-evaluates conditions against Record, or the
// current state when Record is nil.
type ApplyConditionsCommand struct {
	Record record.Record
}

func (c ApplyConditionsCommand) apply(b *Binder) (Result, error) {
	b.ApplyConditions(c.Record)
	return Result{Binder: b, OK: true}, nil
}

// ValidateCommand validates every field.
type ValidateCommand struct{}

func (ValidateCommand) apply(b *Binder) (Result, error) {
	return Result{Binder: b, OK: b.Validate()}, nil
}

// AddCommand adds an instance to the collections named Collection.
type AddCommand struct {
	Collection string
	Prefill    any
}

func (c AddCommand) apply(b *Binder) (Result, error) {
	inst, err := b.Add(c.Collection, c.Prefill)
	if err != nil {
		return Result{Binder: b}, err
	}

	return Result{Binder: b, OK: len(inst) > 0, Instances: inst}, nil
}

// InsertCommand inserts Record into the collections named Collection.
type InsertCommand struct {
	Collection string
	Record     any
}

func (c InsertCommand) apply(b *Binder) (Result, error) {
	inst, err := b.Insert(c.Collection, c.Record)
	if err != nil {
		return Result{Binder: b}, err
	}

	return Result{Binder: b, OK: len(inst) > 0, Instances: inst}, nil
}
