package config

// DatasetConfig locates the scene graphs and question suites.
type DatasetConfig struct {
	SceneDir string `yaml:"scene_dir"` // directory of *.json scene graphs
	TaskDir  string `yaml:"task_dir"`  // directory of question CSV files
	Suite    string `yaml:"suite"`     // count, room, spatial, all
	Workers  int    `yaml:"workers"`   // scenes serialized in parallel
}

// SerializationConfig selects the encoder and the per-object attributes.
type SerializationConfig struct {
	Type       string   `yaml:"type"`        // indented, json, triplets, natural
	DetailKeys []string `yaml:"detail_keys"` // e.g. [position, bounding_box]; [NA] for counts only
	Verbose    bool     `yaml:"verbose"`     // log every encoding
}

// PromptConfig configures prompt rendering.
type PromptConfig struct {
	TemplatePath string `yaml:"template_path"`
}
