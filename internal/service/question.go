package service

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrMalformedCorpus означает, что в файле не нашлось ни одной пары
// вопрос/ответ. Без вопросов боту нечего спрашивать, поэтому ошибка
// фатальна на старте.
var ErrMalformedCorpus = errors.New("no question/answer pairs found")

// Question — один вопрос викторины. После парсинга не изменяется.
type Question struct {
	Index  int    `json:"index"`
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
}

// Corpus — упорядоченный набор вопросов с индексами 1..N.
type Corpus []Question

func (c Corpus) Len() int { return len(c) }

// At возвращает вопрос по 1-базному индексу.
func (c Corpus) At(index int) Question { return c[index-1] }

// ParseCorpus парсит текст с вопросами. Формат: абзацы, разделённые
// пустой строкой; абзац "Вопрос ...: текст" открывает вопрос, следующий
// абзац "Ответ: текст" закрывает его. Остальные абзацы пропускаются,
// вопрос без ответа в корпус не попадает.
func ParseCorpus(raw string) (Corpus, error) {
	var corpus Corpus
	var pending string
	havePending := false

	for _, section := range strings.Split(raw, "\n\n") {
		section = strings.TrimSpace(section)
		switch {
		case strings.HasPrefix(section, "Вопрос"):
			_, rest, _ := strings.Cut(section, ":")
			pending = strings.TrimSpace(rest)
			havePending = pending != ""
		case strings.HasPrefix(section, "Ответ") && havePending:
			_, rest, _ := strings.Cut(section, ":")
			answer := strings.TrimSpace(rest)
			if answer == "" {
				continue
			}
			corpus = append(corpus, Question{
				Index:  len(corpus) + 1,
				Prompt: pending,
				Answer: answer,
			})
			havePending = false
		}
	}

	if len(corpus) == 0 {
		return nil, ErrMalformedCorpus
	}
	return corpus, nil
}

// LoadCorpus читает файл с вопросами и парсит его.
func LoadCorpus(path string) (Corpus, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read quiz file: %w", err)
	}

	corpus, err := ParseCorpus(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return corpus, nil
}
