// Package output holds the write-once sinks a simulation run publishes its
// records to.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/chrisdamba/heatwavesim/internal/models"
	"github.com/chrisdamba/heatwavesim/internal/output/producers"
)

type OutputDestination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

type ConsoleOutput struct {
	w io.Writer
}

func NewConsoleOutput(w io.Writer) *ConsoleOutput {
	return &ConsoleOutput{w: w}
}

func (c *ConsoleOutput) WriteMessage(topic string, msg []byte) error {
	w := c.w
	if w == nil {
		w = os.Stdout
	}
	if _, err := fmt.Fprintf(w, "[%s] %s\n", topic, msg); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	return nil
}

func (c *ConsoleOutput) Close() error {
	if f, ok := c.w.(*os.File); ok {
		_ = f.Sync()
	}
	return nil
}

// partitionPath derives the directory a record lands in. Records carrying a
// day go under day=NNN; the final report gets its own partition.
func partitionPath(topic string, msg []byte) (string, error) {
	if topic == models.TopicFinalReport {
		return "report", nil
	}
	var rec struct {
		Day *int `json:"day"`
	}
	if err := json.Unmarshal(msg, &rec); err != nil {
		return "", err
	}
	if rec.Day == nil {
		return "", fmt.Errorf("record on %s has no day", topic)
	}
	return fmt.Sprintf("day=%03d", *rec.Day), nil
}

// New builds the destinations enabled in config. Brokers and a file format
// can be active together; with none of them, records go to the console.
func New(ctx context.Context, config *models.Config) (OutputDestination, error) {
	var dests []OutputDestination

	if config.KafkaEnabled {
		p, err := producers.NewSaramaProducer(config)
		if err != nil {
			return nil, err
		}
		dests = append(dests, p)
	}

	if config.RabbitMQEnabled {
		p, err := producers.NewRabbitMQProducer(config)
		if err != nil {
			closeAll(dests)
			return nil, err
		}
		dests = append(dests, p)
	}

	if config.OutputPath != "" {
		var dest OutputDestination
		switch config.OutputFormat {
		case "parquet":
			p, err := NewParquetOutput(ctx, config)
			if err != nil {
				closeAll(dests)
				return nil, fmt.Errorf("failed to create Parquet output: %w", err)
			}
			dest = p
		case "json":
			dest = NewJSONOutput(config.OutputPath, config.OutputFolder)
		case "csv":
			dest = NewCSVOutput(config.OutputPath, config.OutputFolder)
		default:
			closeAll(dests)
			return nil, fmt.Errorf("unsupported output format: %s", config.OutputFormat)
		}
		dests = append(dests, dest)
	}

	switch len(dests) {
	case 0:
		return &ConsoleOutput{}, nil
	case 1:
		return dests[0], nil
	}
	return NewMultiOutput(dests...), nil
}

func closeAll(dests []OutputDestination) {
	for _, d := range dests {
		_ = d.Close()
	}
}
