package services

import (
	"encoding/json"
	"fmt"

	"github.com/formpilot/autofill-backend/internal/dtos"
)

// fillPrompt is the fixed instruction template for the form-filling call.
// The model is the enforcing agent for the per-field rules; the pipeline
// re-checks the mechanical ones afterwards (see sanitize.go).
const fillPrompt = `You are a STRICT and CAREFUL form-filling engine.

Your task is to fill form fields using the user profile.
Accuracy is more important than completeness.

====================
CRITICAL RULES
====================

1. NEVER guess.
2. NEVER infer by position or order.
3. If a value does NOT strictly match the field requirement, return an EMPTY STRING "".
4. Returning "" is ALWAYS better than returning a wrong value.

====================
FIELD TYPE RULES
====================

- NAME fields:
  - Alphabetic only
  - No numbers
  - Max 50 characters

- EMAIL fields:
  - Must contain "@"
  - Must look like a valid email

- PHONE / MOBILE fields:
  - DIGITS ONLY
  - Minimum 8 digits
  - If value contains ANY letters return ""

- SALARY / AMOUNT fields:
  - DIGITS ONLY
  - No text, no currency, no commas
  - If unsure return ""

- GENDER fields:
  - Allowed values: Male, Female, Other
  - Anything else ""

- SKILLS fields:
  - Return ALL skills together as a single comma-separated string
  - Example: "Python, C++, FastAPI, Next.js"
  - NEVER put skills into non-skill fields

- COMPANY / EMPLOYER fields:
  - Must be a company or organization name
  - Do NOT return technologies or frameworks
  - If unsure return ""

- DEGREE / EDUCATION fields:
  - Allowed examples: B.Tech, M.Tech, MSc, PhD

- DATE fields:
  - Format strictly as YYYY-MM-DD
  - If not sure return ""

- URL / LINKEDIN fields:
  - Must start with http, https, or www
  - Otherwise ""

====================
INPUT
====================

USER PROFILE (SOURCE OF TRUTH):
%s

FORM FIELDS:
%s

====================
OUTPUT FORMAT
====================

Return ONLY valid JSON.
No explanation.
No markdown.
No extra text.

[
  {
    "id": "<same id from input>",
    "name": "<same name from input>",
    "value": "<string or empty>"
  }
]
`

// buildFillPrompt renders the instruction prompt for one fill request. The
// output is a pure function of profile and fields, so identical requests
// produce byte-identical prompts.
func buildFillPrompt(profile *FullProfile, fields []dtos.FormField) (string, error) {
	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize profile: %w", err)
	}
	fieldsJSON, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize fields: %w", err)
	}
	return fmt.Sprintf(fillPrompt, profileJSON, fieldsJSON), nil
}
