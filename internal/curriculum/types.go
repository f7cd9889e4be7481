package curriculum

// Subject represents a teachable subject loaded from YAML.
type Subject struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Grade represents a grade level (e.g., Primary 4, Grade 7).
type Grade struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
}

// catalog is the YAML document shape. A file may declare subjects,
// grades, or both.
type catalog struct {
	Subjects []Subject `yaml:"subjects"`
	Grades   []Grade   `yaml:"grades"`
}
