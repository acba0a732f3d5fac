package ontology

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "boardgame-advisor/backend/pkg/errors"
)

const docHeader = `<?xml version="1.0" encoding="UTF-8"?>
<rdf:RDF xmlns:owl="http://www.w3.org/2002/07/owl#"
         xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:bg="http://example.org/boardgames#">
`

func doc(body string) string {
	return docHeader + body + "</rdf:RDF>\n"
}

func TestLocalName(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"http://example.org/boardgames#catan", "catan"},
		{"http://example.org/boardgames/catan", "catan"},
		{"http://example.org/a/b#c/d", "c/d"},
		{"#Game", "Game"},
		{"catan", "catan"},
		{"http://example.org/boardgames/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.want, LocalName(tt.uri))
		})
	}
}

func TestParse_GameWithRelations(t *testing.T) {
	input := doc(`
  <owl:NamedIndividual rdf:about="http://example.org/boardgames#catan">
    <rdf:type rdf:resource="http://example.org/boardgames#Game"/>
    <bg:hasGenre rdf:resource="http://example.org/boardgames#eurogame"/>
    <bg:hasMechanic rdf:resource="http://example.org/boardgames#dice_rolling"/>
    <bg:hasMechanic rdf:resource="http://example.org/boardgames#resource_management"/>
    <bg:designedBy rdf:resource="http://example.org/people/klaus_teuber"/>
  </owl:NamedIndividual>
`)

	ont, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, ont.Individuals, 1)

	catan := ont.Individuals[0]
	assert.Equal(t, "catan", catan.ID)
	assert.Equal(t, []string{"Game"}, catan.Types)
	assert.True(t, catan.HasType(TypeGame))
	assert.Equal(t, []Relation{
		{Label: HasGenre, Target: "eurogame"},
		{Label: HasMechanic, Target: "dice_rolling"},
		{Label: HasMechanic, Target: "resource_management"},
		{Label: DesignedBy, Target: "klaus_teuber"},
	}, catan.Relations)
}

func TestParse_KeepsDocumentOrder(t *testing.T) {
	input := doc(`
  <owl:NamedIndividual rdf:about="#eurogame">
    <rdf:type rdf:resource="#Genre"/>
  </owl:NamedIndividual>
  <owl:NamedIndividual rdf:about="#azul">
    <rdf:type rdf:resource="#Game"/>
  </owl:NamedIndividual>
  <owl:NamedIndividual rdf:about="#catan">
    <rdf:type rdf:resource="#Game"/>
  </owl:NamedIndividual>
`)

	ont, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	ids := make([]string, 0, len(ont.Individuals))
	for _, ind := range ont.Individuals {
		ids = append(ids, ind.ID)
	}
	assert.Equal(t, []string{"eurogame", "azul", "catan"}, ids)
}

func TestParse_UnknownTypeIsKept(t *testing.T) {
	input := doc(`
  <owl:NamedIndividual rdf:about="http://example.org/boardgames#meeple">
    <rdf:type rdf:resource="http://example.org/boardgames#Component"/>
  </owl:NamedIndividual>
`)

	ont, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, ont.Individuals, 1)
	assert.Equal(t, []string{"Component"}, ont.Individuals[0].Types)
	assert.False(t, ont.Individuals[0].HasType(TypeGame))
}

func TestParse_SkipsIndividualsWithoutAbout(t *testing.T) {
	input := doc(`
  <owl:NamedIndividual>
    <rdf:type rdf:resource="#Game"/>
  </owl:NamedIndividual>
  <owl:NamedIndividual rdf:about="">
    <rdf:type rdf:resource="#Game"/>
  </owl:NamedIndividual>
`)

	ont, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, ont.Individuals)
}

func TestParse_IgnoresRelationsWithoutResource(t *testing.T) {
	input := doc(`
  <owl:NamedIndividual rdf:about="#hive">
    <rdf:type rdf:resource="#Game"/>
    <bg:hasMechanic>tile_placement</bg:hasMechanic>
    <bg:hasMechanic rdf:resource="#tile_placement"/>
    <bg:hasPlayerCount rdf:resource="#two"/>
  </owl:NamedIndividual>
`)

	ont, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, ont.Individuals, 1)
	assert.Equal(t, []Relation{{Label: HasMechanic, Target: "tile_placement"}}, ont.Individuals[0].Relations)
}

func TestParse_NestedIndividuals(t *testing.T) {
	input := doc(`
  <owl:NamedIndividual rdf:about="#dominion">
    <rdf:type rdf:resource="#Game"/>
    <bg:hasGenre>
      <owl:NamedIndividual rdf:about="#deck_builder">
        <rdf:type rdf:resource="#Genre"/>
      </owl:NamedIndividual>
    </bg:hasGenre>
  </owl:NamedIndividual>
`)

	ont, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, ont.Individuals, 2)
	assert.Equal(t, "dominion", ont.Individuals[0].ID)
	assert.Equal(t, "deck_builder", ont.Individuals[1].ID)
	assert.Equal(t, []string{"Genre"}, ont.Individuals[1].Types)
}

func TestParse_NoIndividuals(t *testing.T) {
	ont, err := Parse(strings.NewReader(doc("")))
	require.NoError(t, err)
	assert.NotNil(t, ont.Individuals)
	assert.Empty(t, ont.Individuals)
}

func TestParse_FormatErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty document", ""},
		{"whitespace only", "   \n  "},
		{"unclosed root", docHeader + `<owl:NamedIndividual rdf:about="#catan">`},
		{"mismatched tags", docHeader + `<owl:NamedIndividual rdf:about="#catan"></owl:Class></rdf:RDF>`},
		{"not markup", "Game: catan, genre: eurogame"},
		{"second root element", doc(`<owl:NamedIndividual rdf:about="#catan"/>`) + "<junk/>"},
		{"text before root", "garbage " + doc(`<owl:NamedIndividual rdf:about="#catan"/>`)},
		{"text after root", doc("") + "trailing"},
		{"undeclared element prefix", `<rdf:RDF><owl:NamedIndividual rdf:about="#catan"/></rdf:RDF>`},
		{"undeclared prefix inside individual", doc(`<owl:NamedIndividual rdf:about="#catan"><ex:hasGenre rdf:resource="#party"/></owl:NamedIndividual>`)},
		{"undeclared attribute prefix", doc(`<owl:NamedIndividual ex:about="#catan"/>`)},
		{"prefix used outside its declaration", doc(`<bg:Wrapper xmlns:ex="http://example.org/x#"/><ex:Thing/>`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ont, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Nil(t, ont)

			var formatErr *apperrors.ErrOntologyFormat
			assert.True(t, errors.As(err, &formatErr), "expected ErrOntologyFormat, got %T", err)
		})
	}
}

func TestParse_NamespaceDeclarations(t *testing.T) {
	input := `<?xml version="1.0"?>
<rdf:RDF xmlns="http://example.org/boardgames#"
         xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xml:base="http://example.org/boardgames">
  <o:NamedIndividual xmlns:o="http://www.w3.org/2002/07/owl#" rdf:about="#pandemic">
    <rdf:type rdf:resource="#Game"/>
    <hasGenre rdf:resource="#cooperative"/>
  </o:NamedIndividual>
  <!-- trailing comment -->
</rdf:RDF>
`

	ont, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, ont.Individuals, 1)
	assert.Equal(t, "pandemic", ont.Individuals[0].ID)
	assert.Equal(t, []Relation{{Label: HasGenre, Target: "cooperative"}}, ont.Individuals[0].Relations)
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.owl")

	ont, err := Load(path)
	require.Error(t, err)
	assert.Nil(t, ont)

	var accessErr *apperrors.ErrOntologyAccess
	require.True(t, errors.As(err, &accessErr))
	assert.Equal(t, path, accessErr.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.owl")
	require.NoError(t, os.WriteFile(path, []byte("<rdf:RDF><oops></rdf:RDF>"), 0o600))

	_, err := Load(path)
	require.Error(t, err)

	var formatErr *apperrors.ErrOntologyFormat
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, path, formatErr.Path)
}

func TestLoad_BundledOntology(t *testing.T) {
	path := filepath.Join("..", "..", "ontology", "boardgames.owl")

	ont, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, ont.Source)

	counts := map[string]int{}
	for _, ind := range ont.Individuals {
		for _, typ := range ind.Types {
			counts[typ]++
		}
	}
	assert.Equal(t, 18, counts[TypeGame])
	assert.Equal(t, 8, counts[TypeGenre])
	assert.Equal(t, 15, counts[TypeMechanic])
}
