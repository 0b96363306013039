// Package root builds and maintains the corpus root document: the
// global organization and person lists, the affiliation timeline, the
// rolled-up tag-usage statistics and the inclusion references to every
// component file.
package root

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/roparl/corpus-cli/internal/core/domain"
	"github.com/roparl/corpus-cli/internal/identifiers"
	"github.com/roparl/corpus-cli/internal/logger"
	"github.com/roparl/corpus-cli/internal/teixml"
)

// Aggregator carries the explicit aggregation state: the id registry,
// the pre-loaded legislator records, the organization names and the
// caches built up while scanning component files. State is created per
// run and never shared.
type Aggregator struct {
	registry *identifiers.Registry
	deputies map[string]domain.Deputy // speaker id -> registry record
	orgNames []string

	doc         *etree.Document
	listPerson  *etree.Element
	tagUsage    map[string]*etree.Element
	personNodes map[string]*etree.Element
	terms       []domain.LegislativeTerm
}

// NewAggregator creates an aggregator over the given registry. Deputy
// records are re-keyed by derived speaker id so component references
// resolve directly.
func NewAggregator(registry *identifiers.Registry, deputies map[string]domain.Deputy, orgNames []string) *Aggregator {
	byID := make(map[string]domain.Deputy, len(deputies))
	for name, deputy := range deputies {
		byID[registry.SpeakerID(name)] = deputy
	}
	return &Aggregator{
		registry: registry,
		deputies: byID,
		orgNames: orgNames,
	}
}

// Aggregate builds the corpus root from a template and the component
// files, which must already be in the documented sorted order. A file
// that cannot be read or merged is logged and skipped; the batch
// continues.
func (a *Aggregator) Aggregate(template *etree.Document, componentFiles []string) (*etree.Document, error) {
	a.doc = template.Copy()
	root, err := teixml.Root(a.doc)
	if err != nil {
		return nil, err
	}
	if err := a.prepare(root); err != nil {
		return nil, err
	}
	a.buildOrganizationList(root)

	for _, path := range componentFiles {
		if err := a.mergeComponent(root, path); err != nil {
			logger.Error("Could not aggregate component file [%s]: %v.", path, err)
		}
	}
	return a.doc, nil
}

// prepare locates the template insertion points and loads the
// legislative terms and any pre-existing person nodes.
func (a *Aggregator) prepare(root *etree.Element) error {
	a.listPerson = root.FindElement("//" + teixml.ElemListPerson)
	if a.listPerson == nil {
		return fmt.Errorf("listPerson: %w", domain.ErrTemplateElement)
	}
	a.personNodes = make(map[string]*etree.Element)
	for _, person := range a.listPerson.FindElements(teixml.ElemPerson) {
		if id := person.SelectAttrValue(teixml.AttrXMLID, ""); id != "" {
			a.personNodes[id] = person
		}
	}

	a.tagUsage = make(map[string]*etree.Element)
	for _, usage := range root.FindElements("//" + teixml.ElemTagUsage) {
		if gi := usage.SelectAttrValue(teixml.AttrGI, ""); gi != "" {
			a.tagUsage[gi] = usage
		}
	}

	a.terms = nil
	for _, event := range root.FindElements("//" + teixml.ElemListEvent + "/" + teixml.ElemEvent) {
		term, err := parseTerm(event)
		if err != nil {
			logger.Error("Could not parse legislative term: %v.", err)
			continue
		}
		a.terms = append(a.terms, term)
	}
	return nil
}

// buildOrganizationList populates the listOrg element once, before any
// component file is scanned, from the distinct sorted organization
// names.
func (a *Aggregator) buildOrganizationList(root *etree.Element) {
	listOrg := root.FindElement("//" + teixml.ElemListOrg)
	if listOrg == nil {
		logger.Error("Could not find listOrg element in root template.")
		return
	}
	names := append([]string(nil), a.orgNames...)
	sort.Strings(names)

	seen := map[string]bool{}
	for _, display := range names {
		name, acronym := domain.SplitOrganizationName(display)
		id := a.registry.OrganizationID(name, acronym)
		if seen[id] {
			continue
		}
		seen[id] = true

		org := listOrg.CreateElement(teixml.ElemOrg)
		org.CreateAttr(teixml.AttrXMLID, id)
		org.CreateAttr(teixml.AttrRole, string(domain.ClassifyOrganizationRole(name)))
		full := org.CreateElement(teixml.ElemOrgName)
		full.CreateAttr(teixml.AttrFull, "yes")
		full.CreateAttr(teixml.AttrXMLLang, teixml.LangRo)
		full.SetText(name)
		if acronym != "" {
			init := org.CreateElement(teixml.ElemOrgName)
			init.CreateAttr(teixml.AttrFull, "init")
			init.SetText(acronym)
		}
	}
}

// mergeComponent folds one component document into the root: tag-usage
// counts, speaker resolution, affiliation timeline and the inclusion
// reference.
func (a *Aggregator) mergeComponent(root *etree.Element, path string) error {
	component, err := teixml.ReadDocument(path)
	if err != nil {
		return err
	}
	componentRoot, err := teixml.Root(component)
	if err != nil {
		return err
	}
	logger.Info("Aggregating component file [%s].", path)

	if err := a.mergeTagUsage(componentRoot); err != nil {
		logger.Error("Tag usage merge failed for [%s]: %v.", path, err)
	}

	date, err := sessionDate(componentRoot)
	if err != nil {
		logger.Error("Could not determine session date for [%s]: %v.", path, err)
	}
	for _, u := range componentRoot.FindElements("//" + teixml.ElemUtterance) {
		who := strings.TrimPrefix(u.SelectAttrValue(teixml.AttrWho, ""), "#")
		if who == "" {
			continue
		}
		person := a.resolvePerson(who)
		if err == nil {
			a.updateAffiliation(person, who, date)
		}
	}

	a.appendInclude(root, path)
	return nil
}

// mergeTagUsage adds the component counts into the root counters. A
// component tag type missing from the root registry is an error, never
// silently ignored.
func (a *Aggregator) mergeTagUsage(componentRoot *etree.Element) error {
	var missing []string
	for _, usage := range componentRoot.FindElements("//" + teixml.ElemTagUsage) {
		gi := usage.SelectAttrValue(teixml.AttrGI, "")
		target, ok := a.tagUsage[gi]
		if !ok {
			missing = append(missing, gi)
			continue
		}
		addOccurs(target, occursOf(usage))
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrUnknownTagType, strings.Join(missing, ", "))
	}
	return nil
}

// resolvePerson returns the person node for a speaker id, creating it
// on first encounter: from the pre-loaded registry when known, else by
// inferring the name parts and gender from the id itself.
func (a *Aggregator) resolvePerson(id string) *etree.Element {
	if node, ok := a.personNodes[id]; ok {
		return node
	}
	person := domain.Person{ID: id}
	if deputy, ok := a.deputies[id]; ok {
		person.FirstName = deputy.FirstName
		person.LastName = deputy.LastName
		person.Gender = deputy.Gender
		person.ImageURL = deputy.ImageURL
	} else {
		logger.Debug("Inferring person record for unknown speaker [%s].", id)
		person.FirstName, person.LastName = domain.SplitSpeakerID(id)
		person.Gender = domain.GuessGender([]string{person.FirstName, person.LastName})
	}

	node := a.listPerson.CreateElement(teixml.ElemPerson)
	node.CreateAttr(teixml.AttrXMLID, id)
	persName := node.CreateElement(teixml.ElemPersName)
	if person.FirstName != "" {
		persName.CreateElement(teixml.ElemForename).SetText(person.FirstName)
	}
	persName.CreateElement(teixml.ElemSurname).SetText(person.LastName)
	sex := node.CreateElement(teixml.ElemSex)
	sex.CreateAttr(teixml.AttrValue, person.Gender)
	if person.ImageURL != "" {
		figure := node.CreateElement(teixml.ElemFigure)
		graphic := figure.CreateElement(teixml.ElemGraphic)
		graphic.CreateAttr(teixml.AttrURL, person.ImageURL)
	}
	a.personNodes[id] = node
	return node
}

// updateAffiliation appends an affiliation for the term covering the
// session date, unless one already exists for that (person, term)
// pair. When terms overlap, the last matching term in list order wins.
func (a *Aggregator) updateAffiliation(person *etree.Element, id string, date time.Time) {
	term, err := a.termForDate(date)
	if err != nil {
		logger.Error("Could not resolve affiliation for [%s]: %v.", id, err)
		return
	}
	ref := "#" + term.ID
	for _, existing := range person.FindElements(teixml.ElemAffiliation) {
		if existing.SelectAttrValue(teixml.AttrAna, "") == ref {
			return
		}
	}
	affiliation := person.CreateElement(teixml.ElemAffiliation)
	affiliation.CreateAttr(teixml.AttrRole, "member")
	affiliation.CreateAttr(teixml.AttrAna, ref)
	affiliation.CreateAttr(teixml.AttrFrom, teixml.FormatDateISO(term.Start))
	if term.End != nil {
		affiliation.CreateAttr(teixml.AttrTo, teixml.FormatDateISO(*term.End))
	}
}

// termForDate returns the legislative term active on the date.
func (a *Aggregator) termForDate(date time.Time) (domain.LegislativeTerm, error) {
	var match *domain.LegislativeTerm
	for i := range a.terms {
		if a.terms[i].Covers(date) {
			match = &a.terms[i]
		}
	}
	if match == nil {
		return domain.LegislativeTerm{}, fmt.Errorf("%w: %s",
			domain.ErrNoTermForDate, teixml.FormatDateISO(date))
	}
	return *match, nil
}

// appendInclude adds the inclusion reference for a component file.
func (a *Aggregator) appendInclude(root *etree.Element, path string) {
	include := root.CreateElement(teixml.ElemInclude)
	include.CreateAttr(teixml.AttrHref, filepath.Base(path))
}

// MergeAnnotationStatistics folds the tag-usage counts of annotated
// component files into an annotated root document. Tag types introduced
// by the annotation layer that the root does not yet declare get a
// zero-initialized counter before merging.
func MergeAnnotationStatistics(doc *etree.Document, annotatedFiles []string) error {
	root, err := teixml.Root(doc)
	if err != nil {
		return err
	}
	usage := make(map[string]*etree.Element)
	var namespace *etree.Element
	for _, elem := range root.FindElements("//" + teixml.ElemTagUsage) {
		if gi := elem.SelectAttrValue(teixml.AttrGI, ""); gi != "" {
			usage[gi] = elem
			namespace = elem.Parent()
		}
	}
	if namespace == nil {
		return fmt.Errorf("tagUsage declarations: %w", domain.ErrTemplateElement)
	}

	for _, path := range annotatedFiles {
		component, err := teixml.ReadDocument(path)
		if err != nil {
			logger.Error("Could not read annotated file [%s]: %v.", path, err)
			continue
		}
		componentRoot, err := teixml.Root(component)
		if err != nil {
			continue
		}
		for _, elem := range componentRoot.FindElements("//" + teixml.ElemTagUsage) {
			gi := elem.SelectAttrValue(teixml.AttrGI, "")
			if gi == "" {
				continue
			}
			target, ok := usage[gi]
			if !ok {
				target = namespace.CreateElement(teixml.ElemTagUsage)
				target.CreateAttr(teixml.AttrGI, gi)
				target.CreateAttr(teixml.AttrOccurs, "0")
				usage[gi] = target
			}
			addOccurs(target, occursOf(elem))
		}
	}
	return nil
}

// parseTerm reads a legislative term from a listEvent event element.
func parseTerm(event *etree.Element) (domain.LegislativeTerm, error) {
	id := event.SelectAttrValue(teixml.AttrXMLID, "")
	from := event.SelectAttrValue(teixml.AttrFrom, "")
	if id == "" || from == "" {
		return domain.LegislativeTerm{}, errors.New("event element lacks id or from date")
	}
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return domain.LegislativeTerm{}, fmt.Errorf("parse term start %q: %w", from, err)
	}
	term := domain.LegislativeTerm{ID: id, Start: start}
	if to := event.SelectAttrValue(teixml.AttrTo, ""); to != "" {
		end, err := time.Parse("2006-01-02", to)
		if err != nil {
			return domain.LegislativeTerm{}, fmt.Errorf("parse term end %q: %w", to, err)
		}
		term.End = &end
	}
	return term, nil
}

// sessionDate reads the session date from a component's setting
// context.
func sessionDate(componentRoot *etree.Element) (time.Time, error) {
	elem := componentRoot.FindElement("//" + teixml.ElemSetting + "/" + teixml.ElemDate)
	if elem == nil {
		return time.Time{}, fmt.Errorf("setting date: %w", domain.ErrTemplateElement)
	}
	when := elem.SelectAttrValue(teixml.AttrWhen, "")
	date, err := time.Parse("2006-01-02", when)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse session date %q: %w", when, err)
	}
	return date, nil
}

func occursOf(usage *etree.Element) int {
	occurs, err := strconv.Atoi(usage.SelectAttrValue(teixml.AttrOccurs, "0"))
	if err != nil {
		return 0
	}
	return occurs
}

func addOccurs(usage *etree.Element, delta int) {
	usage.CreateAttr(teixml.AttrOccurs, strconv.Itoa(occursOf(usage)+delta))
}
