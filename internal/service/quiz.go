package service

import (
	"context"

	"github.com/yourname/shammah/internal"
	"github.com/yourname/shammah/internal/storage"
)

type QuizRequest struct {
	QuestionID string `json:"question_id" validate:"required"`
	Answer     string `json:"answer" validate:"required"`
}

// SaveQuizResponse records the answer, replacing an earlier answer to the same question.
func SaveQuizResponse(ctx context.Context, repo storage.ProfileRepository, user *internal.User, req *QuizRequest) error {
	if err := ValidateRequest(req); err != nil {
		return err
	}
	_, err := mutateProfile(ctx, repo, user, func(p *internal.UserProfile) error {
		for i := range p.QuizResponses {
			if p.QuizResponses[i].QuestionID == req.QuestionID {
				p.QuizResponses[i].Answer = req.Answer
				return nil
			}
		}
		p.QuizResponses = append(p.QuizResponses, internal.QuizResponse{QuestionID: req.QuestionID, Answer: req.Answer})
		return nil
	})
	return err
}
