package catalog

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"qr-quiz-service/internal/domain"
)

// FileLoader reads quizzes from a YAML document with a top-level "quizzes" list.
type FileLoader struct {
	path string
}

func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

type fileDocument struct {
	Quizzes []domain.Quiz `yaml:"quizzes"`
}

func (l *FileLoader) LoadQuizzes(_ context.Context) ([]domain.Quiz, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, err
	}
	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", l.path, err)
	}
	return doc.Quizzes, nil
}
