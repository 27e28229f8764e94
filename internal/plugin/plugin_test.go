package plugin

import (
	"context"
	"errors"
	"testing"
)

// TestPluginMetadataValidation tests plugin metadata validation.
func TestPluginMetadataValidation(t *testing.T) {
	tests := []struct {
		name      string
		metadata  PluginMetadata
		expectErr bool
	}{
		{
			name:      "valid metadata",
			metadata:  PluginMetadata{Name: "sass", Version: "v1.0.0", Type: PluginTypeAsset},
			expectErr: false,
		},
		{
			name:      "missing name",
			metadata:  PluginMetadata{Version: "v1.0.0", Type: PluginTypeAsset},
			expectErr: true,
		},
		{
			name:      "missing version",
			metadata:  PluginMetadata{Name: "sass", Type: PluginTypeAsset},
			expectErr: true,
		},
		{
			name:      "invalid type",
			metadata:  PluginMetadata{Name: "sass", Version: "v1.0.0", Type: PluginType("theme")},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.metadata.Validate()
			if tt.expectErr && err == nil {
				t.Error("expected error but got nil")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// TestPluginTypeValidation tests plugin type validation.
func TestPluginTypeValidation(t *testing.T) {
	tests := []struct {
		pluginType PluginType
		expected   bool
	}{
		{PluginTypeAsset, true},
		{PluginTypeTransform, true},
		{PluginTypeServer, true},
		{PluginType("publisher"), false},
		{PluginType(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.pluginType), func(t *testing.T) {
			if got := tt.pluginType.IsValid(); got != tt.expected {
				t.Errorf("IsValid() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestPluginMetadataString(t *testing.T) {
	metadata := PluginMetadata{Name: "sass", Version: "v1.0.0", Type: PluginTypeAsset}

	if got := metadata.String(); got != "sass@v1.0.0 (asset)" {
		t.Errorf("String() = %q", got)
	}
}

// TestPluginError tests plugin error creation and unwrapping.
func TestPluginError(t *testing.T) {
	baseErr := context.Canceled
	pluginErr := NewPluginError("sass", PhaseBuild, baseErr)

	expected := "plugin sass failed during build: context canceled"
	if pluginErr.Error() != expected {
		t.Errorf("Error() = %q, expected %q", pluginErr.Error(), expected)
	}
	if !errors.Is(pluginErr, baseErr) {
		t.Errorf("expected errors.Is to find %v", baseErr)
	}
}

func TestBasePluginDefaults(t *testing.T) {
	var b BasePlugin

	if err := b.Init(); err != nil {
		t.Errorf("Init() returned error: %v", err)
	}
	if err := b.Cleanup(); err != nil {
		t.Errorf("Cleanup() returned error: %v", err)
	}
	if err := b.Start(context.Background(), nil); err != nil {
		t.Errorf("Start() returned error: %v", err)
	}
}
