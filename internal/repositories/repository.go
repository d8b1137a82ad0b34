package repositories

type repository struct {
	quiz    QuizRepository
	session SessionStore
}

// New bundles the concrete stores into a Repository.
func New(quiz QuizRepository, session SessionStore) Repository {
	return &repository{quiz: quiz, session: session}
}

func (r *repository) Quiz() QuizRepository  { return r.quiz }
func (r *repository) Session() SessionStore { return r.session }
