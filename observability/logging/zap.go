// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

package logging

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts go.uber.org/zap to the Logger interface.
// cmd/agentmaild wires it when logging.format is "json" and uses
// StructuredLogger for any other format.
type ZapLogger struct {
	sugar *zap.SugaredLogger
	level Level
}

// NewZapLogger builds a ZapLogger for the given level and format
// ("json" or "text"); text uses zap's console encoder.
func NewZapLogger(level Level, format string) (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	if format != "json" {
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(toZapLevel(level))

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return &ZapLogger{sugar: logger.Sugar(), level: level}, nil
}

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	case LevelFatal:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func fieldsToZapArgs(ctx context.Context, fields []Field) []interface{} {
	all := append(extractContextFields(ctx), fields...)
	args := make([]interface{}, 0, len(all)*2)
	for _, f := range all {
		args = append(args, f.Key, f.Value)
	}
	return args
}

func (l *ZapLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.sugar.Debugw(msg, fieldsToZapArgs(ctx, fields)...)
}

func (l *ZapLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.sugar.Infow(msg, fieldsToZapArgs(ctx, fields)...)
}

func (l *ZapLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.sugar.Warnw(msg, fieldsToZapArgs(ctx, fields)...)
}

func (l *ZapLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.sugar.Errorw(msg, fieldsToZapArgs(ctx, fields)...)
}

func (l *ZapLogger) Fatal(ctx context.Context, msg string, fields ...Field) {
	l.sugar.Fatalw(msg, fieldsToZapArgs(ctx, fields)...)
}

func (l *ZapLogger) With(fields ...Field) Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for _, f := range fields {
		args = append(args, f.Key, f.Value)
	}
	return &ZapLogger{sugar: l.sugar.With(args...), level: l.level}
}

// SetLevel records level on the adapter only; which entries zap emits
// stays fixed at the level given to NewZapLogger.
func (l *ZapLogger) SetLevel(level Level) {
	l.level = level
}

// SetSamplingRate is a no-op: zap's own sampling core is configured at
// construction time, not adjusted at runtime by this adapter.
func (l *ZapLogger) SetSamplingRate(rate float64) {}

// Sync flushes any buffered log entries; callers should defer Sync on
// the root logger returned from NewZapLogger.
func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}
