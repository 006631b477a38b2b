package schema

import "time"

// Board is an importable snapshot of projects with their full task history.
type Board struct {
	Projects []BoardProject `yaml:"projects" json:"projects"`
}

// BoardProject is a project in a Board snapshot.
type BoardProject struct {
	ID      int64         `yaml:"id" json:"id"`
	Name    string        `yaml:"name" json:"name"`
	Created time.Time     `yaml:"created" json:"created"`
	Sprints []BoardSprint `yaml:"sprints" json:"sprints"`
	Tasks   []BoardTask   `yaml:"tasks" json:"tasks"`
}

// BoardSprint is a sprint in a Board snapshot.
type BoardSprint struct {
	ID      int64      `yaml:"id" json:"id"`
	Name    string     `yaml:"name" json:"name"`
	Started *time.Time `yaml:"started" json:"started"`
	Ends    *time.Time `yaml:"ends" json:"ends"`
}

// BoardTask is a task in a Board snapshot. Durations use Go duration syntax ("1h30m").
type BoardTask struct {
	ID        int64          `yaml:"id" json:"id"`
	Name      string         `yaml:"name" json:"name"`
	Sprint    int64          `yaml:"sprint" json:"sprint"`
	Stage     string         `yaml:"stage" json:"stage"`
	Estimate  string         `yaml:"estimate" json:"estimate"`
	Created   time.Time      `yaml:"created" json:"created"`
	Changelog []BoardChange  `yaml:"changelog" json:"changelog"`
	Worklogs  []BoardWorklog `yaml:"worklogs" json:"worklogs"`
}

// BoardChange is a changelog record in a Board snapshot.
type BoardChange struct {
	ID    int64     `yaml:"id" json:"id"`
	Field string    `yaml:"field" json:"field"`
	Old   string    `yaml:"old" json:"old"`
	New   string    `yaml:"new" json:"new"`
	At    time.Time `yaml:"at" json:"at"`
}

// BoardWorklog is a worklog record in a Board snapshot.
type BoardWorklog struct {
	ID          int64     `yaml:"id" json:"id"`
	Author      string    `yaml:"author" json:"author"`
	Description string    `yaml:"description" json:"description"`
	Duration    string    `yaml:"duration" json:"duration"`
	At          time.Time `yaml:"at" json:"at"`
}

// ImportSummary counts the rows written by an import.
type ImportSummary struct {
	Projects  int `json:"projects"`
	Sprints   int `json:"sprints"`
	Tasks     int `json:"tasks"`
	Changelog int `json:"changelog"`
	Worklogs  int `json:"worklogs"`
}
