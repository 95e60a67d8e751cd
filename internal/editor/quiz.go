package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/blocks"
)

// Quiz structural guards.
var (
	// ErrMinOptions rejects deleting an option below the 2-option minimum.
	ErrMinOptions = errors.New("editor: multiple-choice question needs at least 2 options")
	// ErrQuizLocked rejects answer changes after the quiz was checked.
	ErrQuizLocked = errors.New("editor: quiz is locked until reset")
)

// QuizEditor is the authoring surface of a quiz block: append and delete
// questions, manage options, mark the correct answer. Question reordering is
// not supported.
type QuizEditor struct {
	ed *Editor
	id string
}

// Quiz returns a quiz authoring editor for the given block.
func (e *Editor) Quiz(id string) (*QuizEditor, error) {
	b, err := e.Block(id)
	if err != nil {
		return nil, err
	}
	if b.Type != blocks.TypeQuiz {
		return nil, fmt.Errorf("editor: block %s is %s, not a quiz block", id, b.Type)
	}
	return &QuizEditor{ed: e, id: id}, nil
}

// AddQuestion appends a new question of the given type and returns it.
func (q *QuizEditor) AddQuestion(qt blocks.QuestionType) (blocks.QuizQuestion, error) {
	nq := blocks.NewQuestion(qt)
	err := q.update(func(m *blocks.QuizMetadata) error {
		m.Questions = append(m.Questions, nq)
		return nil
	})
	return nq, err
}

// UpdateQuestion edits a question's prompt, explanation, and points.
func (q *QuizEditor) UpdateQuestion(questionID, prompt, explanation string, points int) error {
	return q.update(func(m *blocks.QuizMetadata) error {
		qu, err := findQuestion(m, questionID)
		if err != nil {
			return err
		}
		qu.Question = prompt
		qu.Explanation = explanation
		qu.Points = points
		return nil
	})
}

// DeleteQuestion removes a question.
func (q *QuizEditor) DeleteQuestion(questionID string) error {
	return q.update(func(m *blocks.QuizMetadata) error {
		for i := range m.Questions {
			if m.Questions[i].ID == questionID {
				m.Questions = append(m.Questions[:i], m.Questions[i+1:]...)
				return nil
			}
		}
		return apperr.ErrNotFound
	})
}

// AddOption appends an empty option to a multiple-choice question.
func (q *QuizEditor) AddOption(questionID string) error {
	return q.update(func(m *blocks.QuizMetadata) error {
		qu, err := findQuestion(m, questionID)
		if err != nil {
			return err
		}
		qu.Options = append(qu.Options, blocks.NewOption())
		return nil
	})
}

// DeleteOption removes an option; the 2-option minimum is enforced as a
// guard, so the control should be disabled at the minimum.
func (q *QuizEditor) DeleteOption(questionID, optionID string) error {
	return q.update(func(m *blocks.QuizMetadata) error {
		qu, err := findQuestion(m, questionID)
		if err != nil {
			return err
		}
		if len(qu.Options) <= 2 {
			return ErrMinOptions
		}
		for i := range qu.Options {
			if qu.Options[i].ID == optionID {
				qu.Options = append(qu.Options[:i], qu.Options[i+1:]...)
				return nil
			}
		}
		return apperr.ErrNotFound
	})
}

// SetOptionText edits an option's text.
func (q *QuizEditor) SetOptionText(questionID, optionID, text string) error {
	return q.update(func(m *blocks.QuizMetadata) error {
		qu, err := findQuestion(m, questionID)
		if err != nil {
			return err
		}
		for i := range qu.Options {
			if qu.Options[i].ID == optionID {
				qu.Options[i].Text = text
				return nil
			}
		}
		return apperr.ErrNotFound
	})
}

// MarkCorrect flags one option as the correct answer; correctness is
// mutually exclusive within a question, so all other options are cleared.
func (q *QuizEditor) MarkCorrect(questionID, optionID string) error {
	return q.update(func(m *blocks.QuizMetadata) error {
		qu, err := findQuestion(m, questionID)
		if err != nil {
			return err
		}
		found := false
		for i := range qu.Options {
			qu.Options[i].IsCorrect = qu.Options[i].ID == optionID
			found = found || qu.Options[i].IsCorrect
		}
		if !found {
			return apperr.ErrNotFound
		}
		return nil
	})
}

// SetCorrectAnswer sets the expected answer string of a true-false or
// short-answer question.
func (q *QuizEditor) SetCorrectAnswer(questionID, answer string) error {
	return q.update(func(m *blocks.QuizMetadata) error {
		qu, err := findQuestion(m, questionID)
		if err != nil {
			return err
		}
		qu.CorrectAnswer = answer
		return nil
	})
}

func (q *QuizEditor) update(mutate func(*blocks.QuizMetadata) error) error {
	b, err := q.ed.Block(q.id)
	if err != nil {
		return err
	}
	meta, _ := b.Metadata.(*blocks.QuizMetadata)
	if meta == nil {
		meta = &blocks.QuizMetadata{Questions: []blocks.QuizQuestion{}}
	}
	if err := mutate(meta); err != nil {
		return err
	}
	return q.ed.UpdateContent(q.id, b.Content, meta)
}

func findQuestion(m *blocks.QuizMetadata, id string) (*blocks.QuizQuestion, error) {
	for i := range m.Questions {
		if m.Questions[i].ID == id {
			return &m.Questions[i], nil
		}
	}
	return nil, apperr.ErrNotFound
}

// Score is the result of checking a quiz.
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// QuizSession is the answering state machine used in read-only display: one
// answer per question, locked once checked, reset by "try again".
type QuizSession struct {
	questions []blocks.QuizQuestion
	answers   map[string]string // question id -> option id or answer string
	locked    bool
}

// NewQuizSession starts an answering session over a quiz's questions.
func NewQuizSession(meta *blocks.QuizMetadata) *QuizSession {
	qs := make([]blocks.QuizQuestion, 0)
	if meta != nil {
		qs = append(qs, meta.Questions...)
	}
	return &QuizSession{questions: qs, answers: make(map[string]string)}
}

// Answer records one answer for a question. For multiple-choice the answer
// is the chosen option id; for true-false and short-answer it is the answer
// string.
func (s *QuizSession) Answer(questionID, answer string) error {
	if s.locked {
		return ErrQuizLocked
	}
	for _, q := range s.questions {
		if q.ID == questionID {
			s.answers[questionID] = answer
			return nil
		}
	}
	return apperr.ErrNotFound
}

// Locked reports whether answers are frozen.
func (s *QuizSession) Locked() bool { return s.locked }

// Check locks the session and computes the score: the count of questions
// whose recorded answer matches the designated correct one. Total is the
// question count regardless of how many were answered.
func (s *QuizSession) Check() Score {
	s.locked = true
	score := Score{Total: len(s.questions)}
	for _, q := range s.questions {
		answer, answered := s.answers[q.ID]
		if !answered {
			continue
		}
		if questionCorrect(q, answer) {
			score.Correct++
		}
	}
	return score
}

// Reset clears all answers and unlocks the session ("try again").
func (s *QuizSession) Reset() {
	s.answers = make(map[string]string)
	s.locked = false
}

func questionCorrect(q blocks.QuizQuestion, answer string) bool {
	switch q.Type {
	case blocks.QuestionMultipleChoice:
		for _, o := range q.Options {
			if o.IsCorrect {
				return o.ID == answer
			}
		}
		return false
	case blocks.QuestionTrueFalse:
		return answer == q.CorrectAnswer
	case blocks.QuestionShortAnswer:
		return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(q.CorrectAnswer))
	default:
		return false
	}
}
