package resolve

// The three prompts keep each model call's output small and checkable:
// a short list of lines, a single line, and a single verbatim substring.
// A lone "find the boundary" call tends to paraphrase; the decomposition
// makes hallucinated anchors stand out at the verification step.

const startBoundaryDesc = `where the author's actual work BEGINS. Everything before that point is front matter: the Project Gutenberg header, title page, table of contents, lists of illustrations, and editorial prefaces`

const endBoundaryDesc = `where the author's actual work ENDS. Everything after that point is back matter: appendices, transcriber's notes, and the Project Gutenberg license footer`

const mapPromptTmpl = `The text below is taken from a Project Gutenberg plain-text ebook.

Identify up to %d candidate lines marking the point %s.

Rules:
- Quote each candidate EXACTLY as it appears in the text, one per line.
- Prefer short, distinctive lines such as chapter or section headings.
- Output only the candidate lines, nothing else.

Text:
---
%s
---`

const selectPromptTmpl = `The text below is taken from a Project Gutenberg plain-text ebook, followed by a numbered list of candidate lines marking the point %s.

Reply with the number of the single best candidate. Output only the number.

Text:
---
%s
---

Candidates:
%s`

const extractPromptTmpl = `The text below is taken from a Project Gutenberg plain-text ebook. The line marking the point %s has been identified as:

%s

Return that line as an EXACT literal substring of the text, byte for byte, exactly as it appears between the markers below. No quotes, no numbering, no commentary.

Text:
---
%s
---`
