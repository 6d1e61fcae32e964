package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duomonggo_backend/internals/databases/dbtest"
	answerModel "duomonggo_backend/internals/features/quizzes/answers/model"
	"duomonggo_backend/internals/features/quizzes/questions/model"
	helper "duomonggo_backend/internals/helpers"
)

func TestDelete_AnswersFirst(t *testing.T) {
	db, mock := dbtest.NewMock(t)
	repo := NewQuestionRepository(db)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "answers" WHERE question_id = \$1`).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(`DELETE FROM "questions" WHERE id = \$1`).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), id))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_MissingRollsBack(t *testing.T) {
	db, mock := dbtest.NewMock(t)
	repo := NewQuestionRepository(db)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "answers" WHERE question_id = \$1`).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "questions" WHERE id = \$1`).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), id)
	assert.True(t, helper.IsNotFound(err))
	assert.Equal(t, "Question not found", helper.MessageOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_MissingRollsBack(t *testing.T) {
	db, mock := dbtest.NewMock(t)
	repo := NewQuestionRepository(db)
	q := &model.QuestionModel{ID: uuid.New(), Content: "q", QuestionType: model.QuestionTrueFalse}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "questions" SET .* WHERE id = \$6`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), q, true)
	assert.True(t, helper.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionRepository_Postgres(t *testing.T) {
	db := dbtest.OpenPostgres(t)
	repo := NewQuestionRepository(db)
	ctx := context.Background()

	courseID := uuid.New()
	require.NoError(t, db.Exec(`INSERT INTO courses (id, title, difficulty) VALUES (?, 'Go', 'EASY')`, courseID).Error)

	for _, n := range []int{2, 0, 1} {
		q := &model.QuestionModel{
			CourseID:     courseID,
			Content:      "q",
			QuestionType: model.QuestionMultipleChoice,
			OrderNumber:  n,
			Answers: []answerModel.AnswerModel{
				{Content: "a", IsCorrect: true},
				{Content: "b"},
			},
		}
		require.NoError(t, repo.Create(ctx, q))
	}

	rows, err := repo.ListByCourse(ctx, courseID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, q := range rows {
		assert.Equal(t, i, q.OrderNumber)
		require.Len(t, q.Answers, 2)
		assert.Equal(t, "a", q.Answers[0].Content)
	}

	first := rows[0]
	first.Answers = []answerModel.AnswerModel{{Content: "z", IsCorrect: true}}
	require.NoError(t, repo.Update(ctx, &first, true))

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, got.Answers, 1)
	assert.Equal(t, "z", got.Answers[0].Content)

	var total int64
	require.NoError(t, db.Model(&answerModel.AnswerModel{}).Count(&total).Error)
	assert.EqualValues(t, 5, total)

	ok, err := repo.Exists(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}
