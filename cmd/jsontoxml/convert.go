package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/shabbyrobe/jsontoxml"
	"github.com/shabbyrobe/jsontoxml/internal/config"
)

// errFailedInputs is returned when at least one input could not be
// converted. Every input is still attempted.
var errFailedInputs = errors.New("some inputs could not be converted")

func newLogger(cfg *config.Config, w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return logger, nil
}

type runner struct {
	cfg    config.ConvertConfig
	logger *logrus.Logger
	stdin  io.Reader
	stdout io.Writer
}

// encoder returns an Encoder for the configured output encoding. UTF-8
// output is written without a transcoding step.
func (r *runner) encoder() (*jsontoxml.Encoder, error) {
	opts := r.cfg.Options()
	name := strings.TrimSpace(r.cfg.Encoding)
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return jsontoxml.NewEncoder(r.stdout, opts...), nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	return jsontoxml.NewEncoderEncoding(r.stdout, name, enc.NewEncoder(), opts...), nil
}

func (r *runner) run(ctx context.Context, inputs []string) error {
	enc, err := r.encoder()
	if err != nil {
		return err
	}

	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	failed := 0
	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		log := r.logger.WithField("input", input)

		data, err := r.read(input)
		if err != nil {
			log.WithError(err).Error("read failed")
			failed++
			continue
		}

		if err := enc.Encode(data); err != nil {
			if errors.Is(err, jsontoxml.ErrInvalidJSON) {
				log.WithError(err).Warn("not valid JSON, skipped")
			} else {
				log.WithError(err).Error("conversion failed")
			}
			failed++
			continue
		}
		// documents are separated by a newline
		if err := enc.WriteRaw("\n"); err != nil {
			return err
		}
		log.WithField("bytes", len(data)).Debug("converted")
	}

	if err := enc.Flush(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errFailedInputs, failed, len(inputs))
	}
	return nil
}

func (r *runner) read(input string) ([]byte, error) {
	if input == "-" {
		return io.ReadAll(r.stdin)
	}
	return os.ReadFile(input)
}
