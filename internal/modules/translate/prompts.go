package translate

import "fmt"

// wordPrompt asks for a dictionary-style translation of a single word in
// the context of its paragraph.
func wordPrompt(word, paragraph, srcLang, targetLang string) string {
	return fmt.Sprintf(`You are a professional translator and language assistant. Your task is to analyze the given paragraph and translate a specific word from %[1]s into %[2]s based on its context in the paragraph. Additionally, provide synonyms and a definition of the word for better understanding.

### Instructions:
1. Translate the word into %[2]s based on its context in the paragraph.
2. Provide a max of 5 synonyms of the word in %[2]s.
3. Provide a max of 5 synonyms of the word in %[1]s.
4. Provide the definition of the word in %[1]s.
5. Provide 3 sentences containing the word as examples in %[1]s.
6. Format the output in JSON format.
7. If the selected word is not a valid word in %[1]s, return false in the success field of the response and set a field 'error' to "can't find a proper translation".

### Input:
- Paragraph: [%[3]s]
- Word: [%[4]s]
- Source Language: %[1]s
- Target Language: %[2]s

### Output (in JSON format):
{
  "success": true,
  "word": "%[4]s",
  "translation": "<%[2]s translation>",
  "synonyms_target": ["<synonym1>", "<synonym2>"],
  "synonyms_src": ["<synonym1>", "<synonym2>"],
  "definition": "<definition in %[1]s>",
  "examples": ["<example1>", "<example2>", "<example3>"]
}`, srcLang, targetLang, paragraph, word)
}

// phrasePrompt asks for a contextual translation of a multi-word text
// portion; no dictionary metadata.
func phrasePrompt(text, paragraph, srcLang, targetLang string) string {
	return fmt.Sprintf(`You are a professional translator and language assistant. Your task is to analyze the given paragraph and translate a specific text portion of it from %[1]s into %[2]s based on its context in the paragraph.

### Instructions:
1. Translate the specified text into %[2]s based on its context in the paragraph.
2. Format the output in JSON format.
3. If the specified text does not represent valid words in %[1]s, return false in the success field of the response and set a field 'error' to "can't find a proper translation".

### Input:
- Paragraph: [%[3]s]
- Text: [%[4]s]
- Source Language: %[1]s
- Target Language: %[2]s

### Output (in JSON format):
{
  "success": true,
  "text": "%[4]s",
  "translation": "<translation in %[2]s>"
}`, srcLang, targetLang, paragraph, text)
}
