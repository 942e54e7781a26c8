package config

// YAMLConfig mirrors .belchior.yaml. Pointers tell unset keys apart from
// explicit false values.
type YAMLConfig struct {
	Format string  `yaml:"format"`
	Color  *bool   `yaml:"color"`
	Strict *bool   `yaml:"strict"`
	Tokens *bool   `yaml:"tokens"`
	Log    YAMLLog `yaml:"log"`
}

type YAMLLog struct {
	Debug *bool  `yaml:"debug"`
	File  string `yaml:"file"`
}
