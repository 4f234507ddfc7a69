package analysis

// analysisPrompt is the fixed instruction sent with every audio file. It pins
// the response to a three-key JSON object and embeds one example to anchor
// the format.
const analysisPrompt = `Analyze the provided audio. Your response MUST be a JSON object with the following keys:
"accent_prediction": string (e.g., "American English", "British English", "Indian English", "Australian English", etc.)
"confidence": string (e.g., "75%", "0%", always a percentage string)
"summary": string (a concise summary of the main content, 2-4 sentences)

Example JSON structure:
` + "```json" + `
{
  "accent_prediction": "American English",
  "confidence": "85%",
  "summary": "This audio contains a brief discussion about climate change and its impacts."
}
` + "```" + `
Do not include any other text or formatting outside of the JSON object.`
