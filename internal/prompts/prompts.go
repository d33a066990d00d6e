// Package prompts holds the fixed instructions for each extraction task and
// the rules for turning caller input into the user turn.
package prompts

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/scout/internal/chat"
)

// Template pairs a system instruction with a sampling temperature. A nil
// Temperature leaves the choice to the provider.
type Template struct {
	Name        string
	System      string
	Temperature *float64
}

// Request builds a fresh two-message request for one call.
func (t Template) Request(model, user string) chat.Request {
	return chat.Request{
		Messages: []chat.Message{
			chat.SystemMessage(t.System),
			chat.UserMessage(user),
		},
		Model:       model,
		Temperature: t.Temperature,
	}
}

// Conversation builds a request that prepends the system instruction to an
// existing message list.
func (t Template) Conversation(model string, history []chat.Message) chat.Request {
	messages := make([]chat.Message, 0, len(history)+1)
	messages = append(messages, chat.SystemMessage(t.System))
	messages = append(messages, history...)
	return chat.Request{Messages: messages, Model: model, Temperature: t.Temperature}
}

var (
	CriteriaParsing = Template{
		Name:        "criteria_parsing",
		System:      criteriaParsingSystem,
		Temperature: chat.Temperature(0.1),
	}
	CriteriaEvaluation = Template{
		Name:        "criteria_evaluation",
		System:      criteriaEvaluationSystem,
		Temperature: chat.Temperature(0.1),
	}
	Tags = Template{
		Name:        "tags",
		System:      tagsSystem,
		Temperature: chat.Temperature(0.5),
	}
	Summary = Template{
		Name:        "summary",
		System:      summarySystem,
		Temperature: chat.Temperature(0.7),
	}
	Title = Template{
		Name:        "title",
		System:      titleSystem,
		Temperature: chat.Temperature(0.3),
	}
	ProfileEvaluation = Template{
		Name:        "profile_evaluation",
		System:      profileEvaluationSystem,
		Temperature: chat.Temperature(0.3),
	}
	Assistant = Template{
		Name:   "assistant",
		System: assistantSystem,
	}
)

func CriteriaParsingUser(query string) string {
	return query
}

// CriteriaEvaluationUser expects criteriaJSON to be the indented JSON array of
// criteria under evaluation.
func CriteriaEvaluationUser(profile, criteriaJSON string) string {
	return fmt.Sprintf(criteriaEvaluationUser, profile, criteriaJSON)
}

func TagsUser(context string) string {
	return "Extract tags from this candidate profile:\n\n" + context
}

func SummaryUser(context string) string {
	return "Generate a professional summary for this candidate:\n\n" + context
}

func TitleUser(query string) string {
	return query
}

func ProfileEvaluationUser(context string, labels []string) string {
	numbered := make([]string, len(labels))
	for i, l := range labels {
		numbered[i] = fmt.Sprintf("%d. %s", i+1, l)
	}
	return fmt.Sprintf(profileEvaluationUser, context, strings.Join(numbered, "\n"))
}

// DefaultProfileCriteria is evaluated on a profile when no search criteria
// are in play.
var DefaultProfileCriteria = []string{
	"Currently employed as a machine learning engineer",
	"Current company operates in the artificial intelligence (AI) sector",
	"Based in the San Francisco Bay Area",
	"Has 5+ years of experience",
	"Has experience with distributed systems",
}

const criteriaParsingSystem = `You are an expert at parsing job search queries into structured criteria.
Given a user's search prompt, break it down into individual, distinct criteria.

Each criterion should be:
- Clear and specific
- Independently evaluable
- Categorized appropriately

Categories:
- location: Geographic requirements (e.g., "based in the Bay Area", "remote-friendly")
- role: Job title or function requirements (e.g., "ML Engineer", "Senior level")
- experience: Years of experience or seniority (e.g., "5+ years experience")
- skills: Technical skills or technologies (e.g., "knows PyTorch", "experience with LLMs")
- company: Company type or specific companies (e.g., "FAANG experience", "startup background")
- education: Educational requirements (e.g., "PhD in CS", "Stanford graduate")
- other: Any other criteria

Return a JSON array of criteria objects with these fields:
- id: unique identifier (criterion_1, criterion_2, etc.)
- description: human-readable description of the criterion
- category: one of the categories above

Example input: "bay area ml eng with 5+ years"
Example output:
[
  {"id": "criterion_1", "description": "Based in the Bay Area", "category": "location"},
  {"id": "criterion_2", "description": "Machine Learning Engineer role or background", "category": "role"},
  {"id": "criterion_3", "description": "5 or more years of experience", "category": "experience"}
]

Return ONLY the JSON array, no other text. Never return more than one array.`

const criteriaEvaluationSystem = `You are an expert at evaluating job candidates against specific criteria.
Given a candidate's profile and a list of criteria, determine if each criterion is met.

Be fair but thorough in your evaluation:
- For location criteria, check if the candidate's location matches (Bay Area includes SF, Oakland, San Jose, Palo Alto, Mountain View, Menlo Park, etc.)
- For role criteria, check if their current role or past roles match
- For experience criteria, check years of experience
- For skills criteria, check their listed skills and work experience
- For company criteria, check their employment history
- For education criteria, check their educational background

Return a JSON array with one object per criterion:
{
  "criterion_id": "the criterion id",
  "met": true/false,
  "reason": "brief explanation why criterion is/isn't met"
}

Return ONLY the JSON array, no other text. Never return more than one array.`

const criteriaEvaluationUser = `Candidate Profile:
%s

Criteria to evaluate:
%s

Evaluate each criterion against this candidate.`

const tagsSystem = `You are an expert recruiter. Extract 6-10 short, relevant tags from a candidate's profile.
Tags should be single words or short phrases (2-3 words max) representing:
- Key technologies and tools
- Domain expertise
- Notable companies
- Education highlights
- Soft skills indicators
Return only a JSON array of strings, nothing else. Example: ["PyTorch", "Stanford PhD", "FAANG", "ML Infrastructure", "Team Lead"]`

const summarySystem = `You are an expert recruiter assistant. Generate a concise professional summary for candidates.
Use **bold** formatting for key highlights like years of experience, key skills, technologies, and notable achievements.
Keep it to 3-4 sentences maximum. Focus on what makes this candidate stand out.`

const titleSystem = `You are an expert at creating concise, descriptive titles for candidate searches.
Given a user's search query, create a short, professional title that summarizes what they're looking for.

Rules:
- Maximum 200 characters
- Be concise but descriptive
- Use title case
- Format like a candidate pool name (e.g., "Bay Area ML Engineers", "Senior Product Designers with SaaS Experience")
- Do not include phrases like "Search for" or "Looking for"

Return ONLY the title text, no quotes or other formatting.`

const profileEvaluationSystem = `You are an expert recruiter evaluating candidates against specific criteria.
For each criterion, determine if the candidate meets it based on their profile.
Return a JSON array with objects containing:
- "id": sequential number as string
- "label": the criterion text
- "status": "met" or "not_met"
- "reason": brief explanation (1 sentence)

Be precise and base your evaluation strictly on the provided information.
Return ONLY the JSON array, no other text.`

const profileEvaluationUser = `Evaluate this candidate against the following criteria:

Candidate Profile:
%s

Criteria to evaluate:
%s`

const assistantSystem = `You are a helpful AI assistant for an applicant tracking system. Help users with recruiting, hiring, and candidate management tasks.`
