package domain

// Session type codes derived from transcript file names.
const (
	SessionOrdinary      = "s"
	SessionExtraordinary = "se"
	SessionJoint         = "sc"
	SessionJointSolemn   = "scs"
	SessionJointVisit    = "scv"
)

// Localized resource strings for session documents. The placeholders
// are filled with localized dates or quantities.
const (
	SessionTitleRo    = "Corpus parlamentar român ParlaMint-RO, ședința Camerei Deputaților din %s"
	SessionSubtitleRo = "Stenograma ședinței Camerei Deputaților din România din %s"
	SessionTitleEn    = "Romanian parliamentary corpus ParlaMint-RO, Regular Session, Chamber of Deputies, %s"
	SessionSubtitleEn = "Minutes of the session of the Chamber of Deputies of Romania, %s"
	NumSpeechesRo     = "%d discursuri"
	NumSpeechesEn     = "%d speeches"
	NumWordsRo        = "%d cuvinte"
	NumWordsEn        = "%d words"
	Heading           = "ROMÂNIA CAMERA DEPUTAȚILOR"
	SessionHeading    = "Ședinta Camerei Deputaților din %s"
	TableOfContents   = "SUMAR"
)

// SessionURITemplate is the canonical address of a session transcript;
// the placeholder is the compact numeric session date (yyyyMMdd).
const SessionURITemplate = "http://www.cdep.ro/pls/steno/steno2015.data?cam=2&dat=%s"
