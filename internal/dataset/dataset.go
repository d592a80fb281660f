// Package dataset loads the machine-learning QA dataset and samples
// questions from it.
package dataset

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"
)

const defaultPath = "data/qa.jsonl"

// ErrEmptyDataset is returned when a sample is requested from a dataset
// with no rows.
var ErrEmptyDataset = errors.New("dataset: empty dataset")

// Row is one QA pair. Only the question is read by the sampler.
type Row struct {
	Question string
	Answer   string
}

// Dataset is an immutable collection of QA rows with a random sampler.
type Dataset struct {
	rows []Row

	mu  sync.Mutex
	rng *rand.Rand
}

// New builds a dataset from in-memory rows.
func New(rows []Row) *Dataset {
	return &Dataset{
		rows: rows,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Load reads a JSONL QA file. The path resolves, in order: the explicit
// argument, the RAGSCOPE_DATASET_PATH env var, then data/qa.jsonl. When no
// file exists at the default path a small built-in sample is used so the
// tool works without any setup.
func Load(ctx context.Context, path string) (*Dataset, error) {
	if ctx == nil {
		return nil, errors.New("dataset: nil context")
	}

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = strings.TrimSpace(os.Getenv("RAGSCOPE_DATASET_PATH"))
		explicit = path != ""
	}
	if path == "" {
		path = defaultPath
	}

	rows, err := readJSONL(ctx, path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return New(builtinSample()), nil
		}
		return nil, fmt.Errorf("dataset: load %q: %w", path, err)
	}
	if len(rows) == 0 && !explicit {
		return New(builtinSample()), nil
	}
	return New(rows), nil
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

// Question returns the question text at index i.
func (d *Dataset) Question(i int) (string, error) {
	if d == nil || i < 0 || i >= len(d.rows) {
		return "", fmt.Errorf("dataset: index %d out of range", i)
	}
	return d.rows[i].Question, nil
}

// Sample returns a uniformly random question and its row index.
func (d *Dataset) Sample() (string, int, error) {
	if d == nil || len(d.rows) == 0 {
		return "", 0, ErrEmptyDataset
	}

	d.mu.Lock()
	idx := d.rng.Intn(len(d.rows))
	d.mu.Unlock()

	return d.rows[idx].Question, idx, nil
}

type rowJSON struct {
	Question    string `json:"question"`
	QuestionAlt string `json:"Question"`
	Answer      string `json:"answer"`
	AnswerAlt   string `json:"Answer"`
}

func readJSONL(ctx context.Context, path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return decodeJSONLStream(ctx, f)
}

func decodeJSONLStream(ctx context.Context, r io.Reader) ([]Row, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)

	var out []Row
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}

		var item rowJSON
		if err := json.Unmarshal(line, &item); err != nil {
			return out, fmt.Errorf("parse jsonl: %w", err)
		}

		question := strings.TrimSpace(item.Question)
		if question == "" {
			question = strings.TrimSpace(item.QuestionAlt)
		}
		if question == "" {
			continue
		}

		answer := strings.TrimSpace(item.Answer)
		if answer == "" {
			answer = strings.TrimSpace(item.AnswerAlt)
		}

		out = append(out, Row{Question: question, Answer: answer})
	}
	if err := sc.Err(); err != nil {
		return out, err
	}
	return out, nil
}
