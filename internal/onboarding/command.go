package onboarding

import (
	"context"
	"fmt"
)

// CommandType names a wizard command.
type CommandType string

// Commands accepted by Dispatch.
const (
	CommandAdvance         CommandType = "advance"
	CommandRetreat         CommandType = "retreat"
	CommandSetField        CommandType = "set-field"
	CommandSetProductField CommandType = "set-product-field"
	CommandSubmit          CommandType = "submit"
)

// Command is a single instruction for a Wizard. Value is nil only when
// clearing a product image.
type Command struct {
	Type    CommandType `json:"type"`
	Field   string      `json:"field,omitempty"`
	Product string      `json:"product,omitempty"`
	Value   *string     `json:"value,omitempty"`
}

// Dispatch applies cmd to the wizard. Navigation and submission never fail;
// only malformed setter commands return an error.
func (w *Wizard) Dispatch(ctx context.Context, cmd Command) error {
	switch cmd.Type {
	case CommandAdvance:
		w.Advance(ctx)
	case CommandRetreat:
		w.Retreat()
	case CommandSubmit:
		w.Submit(ctx)
	case CommandSetField:
		if cmd.Value == nil {
			return fmt.Errorf("%w: %s", ErrMissingValue, cmd.Type)
		}
		return w.SetField(FieldKey(cmd.Field), *cmd.Value)
	case CommandSetProductField:
		if ProductFieldKey(cmd.Field) == ProductImage {
			return w.SetProductImage(ProductKey(cmd.Product), cmd.Value)
		}
		if cmd.Value == nil {
			return fmt.Errorf("%w: %s", ErrMissingValue, cmd.Type)
		}
		return w.SetProductField(ProductKey(cmd.Product), ProductFieldKey(cmd.Field), *cmd.Value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Type)
	}
	return nil
}
