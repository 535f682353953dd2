package validators

import (
	"mime"
	"path/filepath"
	"strings"
)

// formatos aceitos pelo Gemini para áudio inline
var audioMIMETypes = map[string]bool{
	"audio/wav":  true,
	"audio/mp3":  true,
	"audio/mpeg": true,
	"audio/aiff": true,
	"audio/aac":  true,
	"audio/ogg":  true,
	"audio/flac": true,
	"audio/webm": true,
	"audio/mp4":  true,
}

var audioExtensions = map[string]string{
	".wav":  "audio/wav",
	".mp3":  "audio/mp3",
	".aiff": "audio/aiff",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".opus": "audio/ogg",
	".flac": "audio/flac",
	".webm": "audio/webm",
	".m4a":  "audio/mp4",
}

// NormalizeAudioMIME resolves the MIME type of an uploaded audio file from
// its declared content type, falling back to the file extension. It returns
// "" when the upload is not a supported audio format.
func NormalizeAudioMIME(contentType, filename string) string {
	if contentType != "" {
		if mt, _, err := mime.ParseMediaType(contentType); err == nil {
			mt = strings.ToLower(mt)
			if mt == "audio/x-wav" || mt == "audio/wave" {
				mt = "audio/wav"
			}
			if audioMIMETypes[mt] {
				return mt
			}
		}
	}

	if mt, ok := audioExtensions[strings.ToLower(filepath.Ext(filename))]; ok {
		return mt
	}
	return ""
}

func ExtensionForMIME(mt string) string {
	for ext, m := range audioExtensions {
		if m == mt && ext != ".oga" && ext != ".opus" {
			return ext
		}
	}
	return ".bin"
}
