package details

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"duomonggo_backend/internals/configs"
	courseCtl "duomonggo_backend/internals/features/courses/courses/controller"
	courseRepo "duomonggo_backend/internals/features/courses/courses/repository"
	courseSvc "duomonggo_backend/internals/features/courses/courses/service"
	enrollCtl "duomonggo_backend/internals/features/progress/enrollments/controller"
	enrollRepo "duomonggo_backend/internals/features/progress/enrollments/repository"
	enrollSvc "duomonggo_backend/internals/features/progress/enrollments/service"
	mpCtl "duomonggo_backend/internals/features/progress/multiplayer/controller"
	"duomonggo_backend/internals/features/progress/multiplayer/ranking"
	mpRepo "duomonggo_backend/internals/features/progress/multiplayer/repository"
	mpSvc "duomonggo_backend/internals/features/progress/multiplayer/service"
	progressCtl "duomonggo_backend/internals/features/progress/user_progress/controller"
	progressRepo "duomonggo_backend/internals/features/progress/user_progress/repository"
	progressSvc "duomonggo_backend/internals/features/progress/user_progress/service"
	answerCtl "duomonggo_backend/internals/features/quizzes/answers/controller"
	answerRepo "duomonggo_backend/internals/features/quizzes/answers/repository"
	answerSvc "duomonggo_backend/internals/features/quizzes/answers/service"
	questionCtl "duomonggo_backend/internals/features/quizzes/questions/controller"
	questionRepo "duomonggo_backend/internals/features/quizzes/questions/repository"
	questionSvc "duomonggo_backend/internals/features/quizzes/questions/service"
	accountCtl "duomonggo_backend/internals/features/users/accounts/controller"
	accountRepo "duomonggo_backend/internals/features/users/accounts/repository"
	accountSvc "duomonggo_backend/internals/features/users/accounts/service"
	helper "duomonggo_backend/internals/helpers"
	"duomonggo_backend/internals/helpers/assets"
)

type Deps struct {
	Config   *configs.AppConfig
	DB       *gorm.DB
	Redis    *redis.Client // boleh nil
	Uploader assets.Uploader
}

// Services disimpan supaya cron / CLI bisa memakai instance yang sama.
type Services struct {
	Accounts    *accountSvc.AccountService
	Courses     *courseSvc.CourseService
	Questions   *questionSvc.QuestionService
	Answers     *answerSvc.AnswerService
	Enrollments *enrollSvc.EnrollmentService
	Progress    *progressSvc.UserProgressService
	Multiplayer *mpSvc.MultiplayerService
}

type Controllers struct {
	Accounts    *accountCtl.AccountController
	Courses     *courseCtl.CourseController
	Questions   *questionCtl.QuestionController
	Answers     *answerCtl.AnswerController
	Enrollments *enrollCtl.EnrollmentController
	Progress    *progressCtl.UserProgressController
	Multiplayer *mpCtl.MultiplayerController
}

func BuildServices(d Deps) *Services {
	accounts := accountRepo.NewAccountRepository(d.DB)
	courses := courseRepo.NewCourseRepository(d.DB)
	questions := questionRepo.NewQuestionRepository(d.DB)

	var store ranking.Store
	if d.Redis != nil {
		store = ranking.NewRedisRanking(d.Redis)
	}

	progress := progressSvc.NewUserProgressService(progressRepo.NewUserProgressRepository(d.DB), accounts, courses)

	return &Services{
		Accounts: accountSvc.NewAccountService(accounts, d.Uploader, progress, accountSvc.TokenConfig{
			Secret: d.Config.JWTSecret,
			TTL:    d.Config.JWTTTL,
		}),
		Courses:     courseSvc.NewCourseService(courses, d.Config.Location()),
		Questions:   questionSvc.NewQuestionService(questions, courses, d.Uploader),
		Answers:     answerSvc.NewAnswerService(answerRepo.NewAnswerRepository(d.DB), questions),
		Enrollments: enrollSvc.NewEnrollmentService(enrollRepo.NewEnrollmentRepository(d.DB), accounts, courses),
		Progress:    progress,
		Multiplayer: mpSvc.NewMultiplayerService(mpRepo.NewMultiplayerRepository(d.DB), accounts, courses, store),
	}
}

func BuildControllers(s *Services) *Controllers {
	v := helper.NewValidator()
	return &Controllers{
		Accounts:    accountCtl.NewAccountController(s.Accounts, v),
		Courses:     courseCtl.NewCourseController(s.Courses, v),
		Questions:   questionCtl.NewQuestionController(s.Questions, v),
		Answers:     answerCtl.NewAnswerController(s.Answers, v),
		Enrollments: enrollCtl.NewEnrollmentController(s.Enrollments, v),
		Progress:    progressCtl.NewUserProgressController(s.Progress, v),
		Multiplayer: mpCtl.NewMultiplayerController(s.Multiplayer),
	}
}

