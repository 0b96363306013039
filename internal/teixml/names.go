// Package teixml provides the element vocabulary and tree helpers for
// reading, mutating and serializing TEI corpus documents.
package teixml

// TEI element names used by the pipeline. Templates declare the TEI
// namespace as default, so elements carry unprefixed local names.
const (
	ElemTEI         = "TEI"
	ElemTEICorpus   = "teiCorpus"
	ElemTitleStmt   = "titleStmt"
	ElemTitle       = "title"
	ElemMeeting     = "meeting"
	ElemUtterance   = "u"
	ElemDiv         = "div"
	ElemExtent      = "extent"
	ElemMeasure     = "measure"
	ElemDate        = "date"
	ElemBibl        = "bibl"
	ElemIdno        = "idno"
	ElemSetting     = "setting"
	ElemTagUsage    = "tagUsage"
	ElemTagsDecl    = "tagsDecl"
	ElemNamespace   = "namespace"
	ElemText        = "text"
	ElemBody        = "body"
	ElemHead        = "head"
	ElemNote        = "note"
	ElemSeg         = "seg"
	ElemKinesic     = "kinesic"
	ElemDesc        = "desc"
	ElemGap         = "gap"
	ElemListOrg     = "listOrg"
	ElemOrg         = "org"
	ElemOrgName     = "orgName"
	ElemListPerson  = "listPerson"
	ElemPerson      = "person"
	ElemPersName    = "persName"
	ElemForename    = "forename"
	ElemSurname     = "surname"
	ElemSex         = "sex"
	ElemFigure      = "figure"
	ElemGraphic     = "graphic"
	ElemListEvent   = "listEvent"
	ElemEvent       = "event"
	ElemAffiliation = "affiliation"
	ElemSentence    = "s"
	ElemWord        = "w"
	ElemPunct       = "pc"
	ElemLinkGrp     = "linkGrp"
	ElemLink        = "link"
	ElemInclude     = "xi:include"
)

// Attribute names.
const (
	AttrXMLID    = "xml:id"
	AttrXMLLang  = "xml:lang"
	AttrType     = "type"
	AttrN        = "n"
	AttrCorresp  = "corresp"
	AttrUnit     = "unit"
	AttrQuantity = "quantity"
	AttrWhen     = "when"
	AttrGI       = "gi"
	AttrOccurs   = "occurs"
	AttrAna      = "ana"
	AttrWho      = "who"
	AttrRole     = "role"
	AttrRef      = "ref"
	AttrFrom     = "from"
	AttrTo       = "to"
	AttrValue    = "value"
	AttrURL      = "url"
	AttrHref     = "href"
	AttrLemma    = "lemma"
	AttrPOS      = "pos"
	AttrMSD      = "msd"
	AttrTarget   = "target"
	AttrFull     = "full"
)

// Attribute and type values.
const (
	TypeDebateSection = "debateSection"
	TypeMain          = "main"
	TypeSub           = "sub"
	TypeSession       = "session"
	TypeSpeaker       = "speaker"
	TypeEditorial     = "editorial"
	TypeSummary       = "summary"
	TypeTime          = "time"
	TypeChairman      = "chairman"
	TypeURI           = "URI"
	UnitSpeeches      = "speeches"
	UnitWords         = "words"
	LangRo            = "ro"
	LangEn            = "en"
	AnaChair          = "#chair"
	AnaRegular        = "#regular"
	TypeUDSyn         = "UD-SYN"
)
