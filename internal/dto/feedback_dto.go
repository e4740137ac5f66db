package dto

// PerformanceLevelGood and PerformanceLevelNeedsImprovement are the two
// accuracy bands reported in feedback.
const (
	PerformanceLevelGood             = "Good"
	PerformanceLevelNeedsImprovement = "Needs Improvement"
)

// Comparison messages for the current score against the historical average.
// A score equal to the average is reported as performing better.
const (
	ComparisonBelowAverage = "Your score is lower than your usual performance. Consider revisiting topics you find difficult."
	ComparisonAboveAverage = "You're performing better than your historical average! Keep it up."
)

// QuizData is the current quiz definition as delivered by the quiz endpoint.
type QuizData struct {
	Quiz QuizInfo `json:"quiz"`
}

// QuizInfo carries the topic and score figures of the quiz being graded.
type QuizInfo struct {
	Topic      string    `json:"topic"`
	TotalScore FlexFloat `json:"total_score"`
	Score      FlexFloat `json:"score"`
}

// SubmissionData is the attempt currently being graded.
type SubmissionData struct {
	CorrectAnswers      int                   `json:"correct_answers" validate:"gte=0"`
	IncorrectAnswers    int                   `json:"incorrect_answers" validate:"gte=0"`
	TotalQuestions      int                   `json:"total_questions" validate:"gte=0"`
	FinalScore          FlexFloat             `json:"final_score"`
	InitialMistakeCount int                   `json:"initial_mistake_count" validate:"gte=0"`
	MistakesCorrected   int                   `json:"mistakes_corrected" validate:"gte=0"`
	ResponseMap         map[string]FlexString `json:"response_map"`
}

// HistoricalEntry is one past attempt from the historical feed. Score and
// FinalScore are pointers so that absent fields can be told apart from zero.
type HistoricalEntry struct {
	Quiz       HistoricalQuiz `json:"quiz"`
	Score      *FlexFloat     `json:"score"`
	FinalScore *FlexFloat     `json:"final_score"`
}

// HistoricalQuiz describes the quiz a historical attempt was taken against.
type HistoricalQuiz struct {
	Topic          string               `json:"topic"`
	TotalQuestions int                  `json:"total_questions"`
	Questions      []HistoricalQuestion `json:"questions"`
}

// HistoricalQuestion links a question identifier to its topic.
type HistoricalQuestion struct {
	QuestionID FlexString `json:"question_id"`
	Topic      string     `json:"topic"`
}

// ScoreValue returns the attempt score, or 0 when the feed omitted it.
func (e HistoricalEntry) ScoreValue() float64 {
	return e.Score.Float64()
}

// FinalScoreValue returns the final score, falling back to the attempt score
// when the feed omitted it.
func (e HistoricalEntry) FinalScoreValue() float64 {
	if e.FinalScore == nil {
		return e.ScoreValue()
	}
	return e.FinalScore.Float64()
}

// FeedbackRecord is the structured performance summary for one graded attempt.
type FeedbackRecord struct {
	Accuracy               float64 `json:"accuracy"`
	FinalScore             float64 `json:"final_score"`
	Score                  float64 `json:"score"`
	Mistakes               int     `json:"mistakes"`
	PerformanceLevel       string  `json:"performance_level"`
	HistoricalAverageScore float64 `json:"historical_average_score"`
	HistoricalComparison   string  `json:"historical_comparison"`
}

// ResultsResponse is the full payload returned by the results endpoint.
type ResultsResponse struct {
	Feedback         FeedbackRecord `json:"feedback"`
	Recommendations  []string       `json:"recommendations"`
	MistakesByTopic  map[string]int `json:"mistakes_by_topic"`
	HistoricalScores []float64      `json:"historical_scores"`
}

// TrainingSummary reports the outcome of an offline training run.
type TrainingSummary struct {
	Samples   int    `json:"samples"`
	Positives int    `json:"positives"`
	Topics    int    `json:"topics"`
	ModelPath string `json:"model_path"`
}
