package pipeline

import (
	"context"
	"time"

	"github.com/pipeweave/pipeweave/internal/definition"
	"github.com/pipeweave/pipeweave/internal/logging"
	"github.com/pipeweave/pipeweave/internal/schema"
)

// builtComponent binds a descriptor's static facts to its validated config
// record, ready to be wrapped in a host at run time.
type builtComponent struct {
	Index    int
	Type     string
	ID       string
	Optional bool
	Timeout  *time.Duration
	Config   schema.Record
}

func buildComponent(logger logging.Logger, index int, desc definition.ComponentDescriptor, declare func(*schema.Configurator)) (builtComponent, error) {
	configurator := schema.NewConfigurator()
	declare(configurator)

	record, err := configurator.Validate(desc.ID, desc.Config)
	if err != nil {
		return builtComponent{}, err
	}

	if options := record.Redacted(configurator.DeclaredOrder()); len(options) > 0 {
		logger.Info(context.Background(), "component configured", "id", desc.ID, "type", desc.Type, "options", options)
	}

	var timeout *time.Duration
	if desc.Timeout != nil {
		seconds, err := schema.CoerceDurationSeconds(*desc.Timeout)
		if err != nil {
			return builtComponent{}, err
		}
		d := time.Duration(seconds.(int)) * time.Second
		timeout = &d
	}

	return builtComponent{
		Index:    index,
		Type:     desc.Type,
		ID:       desc.ID,
		Optional: desc.Optional,
		Timeout:  timeout,
		Config:   record,
	}, nil
}
