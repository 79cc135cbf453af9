package domain

// TranslateRequest is a single translation job. SourceLang accepts a
// language code, a language name or "auto"; TargetLang a code or name.
// Proxy, when set, overrides the proxy pool for this request only.
type TranslateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
	Proxy      string `json:"proxy,omitempty"`
}

// TranslateResult
//
//	{
//	  "src": "ko",
//	  "confidence": 0.97,
//	  "dest": "en",
//	  "origin": "안녕하세요.",
//	  "text": "Good evening.",
//	  "pronunciation": "Good evening."
//	}
type TranslateResult struct {
	Src           string  `json:"src"`
	Confidence    float64 `json:"confidence"`
	Dest          string  `json:"dest"`
	Origin        string  `json:"origin"`
	Text          string  `json:"text"`
	Pronunciation string  `json:"pronunciation"`
}

// BatchTranslateRequest translates every text in order with the same
// language pair. The response list preserves input order.
type BatchTranslateRequest struct {
	Texts      []string `json:"texts"`
	SourceLang string   `json:"source_lang"`
	TargetLang string   `json:"target_lang"`
	Proxy      string   `json:"proxy,omitempty"`
}
