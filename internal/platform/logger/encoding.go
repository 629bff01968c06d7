package logger

import (
	"strings"

	"github.com/nulzo/project-tracker-api/internal/cli"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

var bufferPool = buffer.NewPool()

// coloredConsoleEncoder highlights the trailing JSON field blob of console lines.
type coloredConsoleEncoder struct {
	zapcore.Encoder
}

func NewColoredConsoleEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return &coloredConsoleEncoder{
		Encoder: zapcore.NewConsoleEncoder(cfg),
	}
}

func (c *coloredConsoleEncoder) Clone() zapcore.Encoder {
	return &coloredConsoleEncoder{
		Encoder: c.Encoder.Clone(),
	}
}

func (c *coloredConsoleEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	buf, err := c.Encoder.EncodeEntry(ent, fields)
	if err != nil {
		return nil, err
	}

	// the console encoder separates metadata from the fields object with a tab
	line := buf.String()
	splitIdx := strings.Index(line, "\t{")
	if splitIdx == -1 {
		return buf, nil
	}

	out := bufferPool.Get()
	out.AppendString(line[:splitIdx+1])
	out.AppendString(cli.HighlightJSON(line[splitIdx+1:]))
	buf.Free()

	return out, nil
}
