package heat

import "errors"

var ErrNotFound = errors.New("heat profile not found")

// InvalidAnswersError maps question ids to what is wrong with their answer.
type InvalidAnswersError struct {
	Fields map[string]string
}

func (e *InvalidAnswersError) Error() string { return "quiz answers incomplete or invalid" }

// ValidateAnswers requires one known option for each of the questions.
func ValidateAnswers(a Answers) error {
	fields := map[string]string{}
	for _, q := range Questions {
		v, ok := a[q.ID]
		if !ok || v == "" {
			fields[q.ID] = "Answer required."
			continue
		}
		if _, ok := findOption(q.ID, v); !ok {
			fields[q.ID] = "Unknown option."
		}
	}
	for k := range a {
		if !knownQuestion(k) {
			fields[k] = "Unknown question."
		}
	}
	if len(fields) > 0 {
		return &InvalidAnswersError{Fields: fields}
	}
	return nil
}

func knownQuestion(id string) bool {
	for _, q := range Questions {
		if q.ID == id {
			return true
		}
	}
	return false
}
