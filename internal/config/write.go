package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const fileHeader = "# pbar configuration. See 'pbar init --help'.\n"

// Write serialises cfg to path. It refuses to overwrite an existing file
// unless force is set.
func Write(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// fileLayout is Config as it appears on disk. Durations are written as
// strings like "250ms" so the file stays readable and round-trips.
type fileLayout struct {
	Version   int `yaml:"version"`
	Indicator struct {
		Speed         string `yaml:"speed"`
		FrameInterval string `yaml:"frame_interval"`
	} `yaml:"indicator"`
	Display struct {
		Width      int    `yaml:"width"`
		Gradient   bool   `yaml:"gradient"`
		Fade       string `yaml:"fade"`
		Transition string `yaml:"transition"`
		Color      string `yaml:"color"`
	} `yaml:"display"`
	Metrics MetricsConfig `yaml:"metrics"`
}

func layoutOf(cfg *Config) fileLayout {
	var l fileLayout
	l.Version = cfg.Version
	l.Indicator.Speed = cfg.Indicator.Speed
	l.Indicator.FrameInterval = cfg.Indicator.FrameInterval.String()
	l.Display.Width = cfg.Display.Width
	l.Display.Gradient = cfg.Display.Gradient
	l.Display.Fade = cfg.Display.Fade.String()
	l.Display.Transition = cfg.Display.Transition.String()
	l.Display.Color = cfg.Display.Color
	l.Metrics = cfg.Metrics
	return l
}

// Marshal renders cfg as YAML with the standard header.
func Marshal(cfg *Config) ([]byte, error) {
	var buf strings.Builder
	buf.WriteString(fileHeader)

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(layoutOf(cfg)); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	encoder.Close()

	return []byte(buf.String()), nil
}

// SetValue sets a dotted key such as "indicator.speed" in the config file at
// configPath. It preserves the existing YAML structure and comments and
// creates missing sections. The result is validated before it is written.
func SetValue(configPath, key, value string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if root.Kind == 0 {
		root = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return fmt.Errorf("invalid YAML document structure")
	}

	node := root.Content[0]
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("expected mapping at document root")
	}

	parts := strings.Split(key, ".")
	for _, part := range parts[:len(parts)-1] {
		child := findMapValue(node, part)
		if child == nil {
			child = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			node.Content = append(node.Content, scalar(part), child)
		}
		if child.Kind != yaml.MappingNode {
			return fmt.Errorf("'%s' is not a section", part)
		}
		node = child
	}

	last := parts[len(parts)-1]
	if existing := findMapValue(node, last); existing != nil {
		existing.Kind = yaml.ScalarNode
		existing.Tag = ""
		existing.Value = value
		existing.Content = nil
	} else {
		newValue := scalar(value)
		newValue.Tag = ""
		node.Content = append(node.Content, scalar(last), newValue)
	}

	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&root); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	encoder.Close()

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	if err := v.ReadConfig(strings.NewReader(buf.String())); err != nil {
		return fmt.Errorf("failed to re-read config: %w", err)
	}
	cfg, err := parseConfig(v, configPath)
	if err != nil {
		return err
	}
	if err := Validate(cfg); err != nil {
		return err
	}

	if err := os.WriteFile(configPath, []byte(buf.String()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

// findMapValue finds a value in a mapping node by key name.
func findMapValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i < len(node.Content)-1; i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.Value == key {
			return valueNode
		}
	}

	return nil
}
