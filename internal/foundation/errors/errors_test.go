package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "magnet.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Error() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Error())
		}

		file, exists := err.Context().GetString("file")
		if !exists || file != "magnet.yaml" {
			t.Errorf("expected context file=magnet.yaml, got %v", file)
		}
	})

	t.Run("Cause on its own line", func(t *testing.T) {
		cause := errors.New("disk full")
		err := WrapError(cause, CategoryBuild, "write failed").Build()

		if err.Error() != "write failed:\ndisk full" {
			t.Errorf("unexpected message %q", err.Error())
		}
		if !errors.Is(err, cause) {
			t.Error("expected error to wrap cause")
		}
	})

	t.Run("Detection through wrapping", func(t *testing.T) {
		inner := BuildError("compile failed").Build()
		wrapped := fmt.Errorf("plugin sass: %w", inner)

		if !IsClassified(wrapped) {
			t.Fatal("expected wrapped error to be classified")
		}
		if !HasCategory(wrapped, CategoryBuild) {
			t.Error("expected build category")
		}
		if GetSeverity(wrapped) != SeverityFatal {
			t.Error("expected fatal severity")
		}
		if GetCategory(errors.New("plain")) != CategoryInternal {
			t.Error("expected plain errors to default to internal")
		}
	})

	t.Run("WithContext does not mutate original", func(t *testing.T) {
		base := BuildError("compile failed").Build()
		extended := base.WithContext("source", "a.scss")

		if _, ok := base.Context().Get("source"); ok {
			t.Error("expected base context to be unchanged")
		}
		if src, _ := extended.Context().GetString("source"); src != "a.scss" {
			t.Errorf("expected source=a.scss, got %q", src)
		}
		if !errors.Is(extended, base) {
			t.Error("expected errors with same category and message to match")
		}
	})
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name     string
		builder  *ErrorBuilder
		category ErrorCategory
		severity ErrorSeverity
	}{
		{"ConfigError", ConfigError("test"), CategoryConfig, SeverityFatal},
		{"ValidationError", ValidationError("test"), CategoryValidation, SeverityFatal},
		{"NotFoundError", NotFoundError("test"), CategoryNotFound, SeverityError},
		{"BuildError", BuildError("test"), CategoryBuild, SeverityFatal},
		{"FileSystemError", FileSystemError("test"), CategoryFileSystem, SeverityError},
		{"RuntimeError", RuntimeError("test"), CategoryRuntime, SeverityFatal},
		{"InternalError", InternalError("test"), CategoryInternal, SeverityFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.builder.Build()
			if err.Category() != tt.category {
				t.Errorf("expected category %s, got %s", tt.category, err.Category())
			}
			if err.Severity() != tt.severity {
				t.Errorf("expected severity %s, got %s", tt.severity, err.Severity())
			}
			if !strings.Contains(err.Error(), "test") {
				t.Errorf("expected message to contain 'test', got %q", err.Error())
			}
		})
	}
}

func TestErrorContextMerge(t *testing.T) {
	ctx1 := ErrorContext{}.Set("key1", "value1").Set("shared", "original")
	ctx2 := ErrorContext{}.Set("key2", "value2").Set("shared", "overridden")

	merged := ctx1.Merge(ctx2)

	if v, _ := merged.GetString("key1"); v != "value1" {
		t.Errorf("expected key1=value1, got %s", v)
	}
	if v, _ := merged.GetString("key2"); v != "value2" {
		t.Errorf("expected key2=value2, got %s", v)
	}
	if v, _ := merged.GetString("shared"); v != "overridden" {
		t.Errorf("expected shared=overridden, got %s", v)
	}
}
