package constant

const (
	ChatMessageRoleUser = "user"
	ChatMessageRoleBot  = "bot"

	// Fixed user-facing templates. The service never surfaces internal errors;
	// every failure path resolves to one of these.
	FallbackMessage       = "Je n’ai pas bien compris votre question. Pouvez-vous reformuler ?"
	ClarificationPrompt   = "Je ne suis pas certain d’avoir compris. Vouliez-vous parler de l’un de ces sujets ?"
	ScenarioCancelled     = "Scénario annulé. Comment puis-je vous aider ?"
	ScenarioNotUnderstood = "Je n'ai pas compris. "
	EmptyQuestionMessage  = "Veuillez poser une question."
)

// GenericSuggestions is the fixed list offered when ranking yields nothing
// usable (no corpus, or top score below the probable threshold).
var GenericSuggestions = []string{
	"Quels sont vos horaires d’ouverture ?",
	"Comment puis-je vous contacter ?",
	"Quels services proposez-vous ?",
}

const (
	// UnansweredQuestionTopic is the in-process pub/sub topic carrying queries
	// that scored below the main threshold.
	UnansweredQuestionTopic = "UNANSWERED_QUESTION"
)
