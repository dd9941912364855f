// pkg/manifest/render_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test the four section rendering shapes

package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scottidler/manifest/pkg/spec"
	"github.com/scottidler/manifest/pkg/walker"
)

func TestLinkSectionHeredoc(t *testing.T) {
	section := LinkSection{Pairs: []walker.LinkPair{
		{Source: "/work/bashrc", Dest: "/home/user/.bashrc"},
		{Source: "/work/vimrc", Dest: "/home/user/.vimrc"},
	}}

	got := section.Render()

	want := `echo "links:"
while read -r file link; do
    linker "$file" "$link"
done<<EOM
/work/bashrc /home/user/.bashrc
/work/vimrc /home/user/.vimrc
EOM
`
	assert.Equal(t, want, got)
}

func TestLinkSectionEmpty(t *testing.T) {
	assert.Equal(t, "", LinkSection{}.Render())
}

func TestPpaSectionHeredoc(t *testing.T) {
	got := PpaSection{Items: []string{"git-core/ppa"}}.Render()

	assert.Contains(t, got, `echo "ppas:"`)
	assert.Contains(t, got, "while read pkg; do")
	assert.Contains(t, got, `sudo add-apt-repository -y "ppa:$pkg"`)
	assert.Contains(t, got, "done<<EOM\ngit-core/ppa\nEOM\n")
}

func TestAptSectionContinuation(t *testing.T) {
	got := AptSection{Items: []string{"htop", "jq", "vim"}}.Render()

	want := `echo "apt packages:"
sudo apt update && sudo apt upgrade -y && sudo apt install -y software-properties-common
sudo apt install -y \
    htop \
    jq \
    vim
`
	assert.Equal(t, want, got)
}

func TestDnfSectionContinuation(t *testing.T) {
	got := DnfSection{Items: []string{"jq"}}.Render()

	// single item carries no continuation marker
	want := `echo "dnf packages:"
sudo dnf install -y \
    jq
`
	assert.Equal(t, want, got)
}

func TestNpmSectionContinuation(t *testing.T) {
	got := NpmSection{Items: []string{"eslint", "prettier"}}.Render()

	assert.Contains(t, got, "sudo npm install -g \\\n    eslint \\\n    prettier\n")
}

func TestPip3Section(t *testing.T) {
	got := Pip3Section{Items: []string{"requests"}, Distutils: []string{"setuptools"}}.Render()

	assert.Contains(t, got, "sudo apt-get install -y python3-dev")
	assert.Contains(t, got, "sudo -H pip3 install --upgrade pip setuptools")
	assert.Contains(t, got, "sudo apt-get install -y \\\n    python3-setuptools\n")
	assert.Contains(t, got, "sudo -H pip3 install --upgrade \\\n    requests\n")
}

func TestPipxSectionHeredoc(t *testing.T) {
	got := PipxSection{Items: []string{"httpie"}}.Render()

	want := `echo "pipx packages:"
while read pkg; do
    pipx install "$pkg"
done<<EOM
httpie
EOM
`
	assert.Equal(t, want, got)
}

func TestFlatpakSectionContinuation(t *testing.T) {
	got := FlatpakSection{Items: []string{"org.gimp.GIMP"}}.Render()

	assert.Contains(t, got, "flatpak install --assumeyes --or-update \\\n    org.gimp.GIMP\n")
}

func TestCargoSectionContinuation(t *testing.T) {
	got := CargoSection{Items: []string{"ripgrep"}}.Render()

	assert.Contains(t, got, `echo "cargo crates:"`)
	assert.Contains(t, got, "cargo install \\\n    ripgrep\n")
}

func TestGithubSectionCustomShape(t *testing.T) {
	section := GithubSection{
		Repopath: "repos",
		Cwd:      "/work",
		Home:     "/home/user",
		Repos: map[string]spec.RepoSpec{
			"scottidler/aka": {
				Cargo: []string{"./"},
				Link:  spec.LinkSpec{Items: map[string]string{"bin/aka.zsh": "~/.config/aka/aka.zsh"}},
			},
		},
	}

	got := section.Render()

	assert.Contains(t, got, `echo "github repos:"`)
	assert.Contains(t, got, `echo "scottidler/aka:"`)
	assert.Contains(t, got, "git clone --recursive https://github.com/scottidler/aka /work/repos/scottidler_aka\n")
	assert.Contains(t, got, "(cd /work/repos/scottidler_aka && git pull && git checkout HEAD)\n")
	assert.Contains(t, got, "cargo install --path /work/repos/scottidler_aka/./\n")
	assert.Contains(t, got, "/work/repos/scottidler_aka/bin/aka.zsh /home/user/.config/aka/aka.zsh\n")
	assert.NotContains(t, got, "git-crypt")
}

func TestGithubSectionSortedRepoOrder(t *testing.T) {
	section := GithubSection{
		Repopath: "repos",
		Cwd:      "/work",
		Home:     "/home/user",
		Repos: map[string]spec.RepoSpec{
			"b/two":   {},
			"a/one":   {},
			"c/three": {},
		},
	}

	got := section.Render()

	first := strings.Index(got, `echo "a/one:"`)
	second := strings.Index(got, `echo "b/two:"`)
	third := strings.Index(got, `echo "c/three:"`)
	assert.True(t, first >= 0 && first < second && second < third)
}

func TestGithubSectionNestedScripts(t *testing.T) {
	section := GithubSection{
		Repopath: "repos",
		Cwd:      "/work",
		Home:     "/home/user",
		Repos: map[string]spec.RepoSpec{
			"a/tool": {Script: spec.ScriptSpec{Items: map[string]string{"setup": "make install"}}},
		},
	}

	got := section.Render()

	assert.Contains(t, got, "echo \"setup:\"\nmake install\n")
	// the nested script shape pulls in the latest() helper
	assert.Contains(t, strings.Join(section.Functions(), ""), "latest()")
}

func TestGitCryptSectionPreconditions(t *testing.T) {
	section := GitCryptSection{GithubSection{
		Repopath: "repos",
		Cwd:      "/work",
		Home:     "/home/user",
		Repos: map[string]spec.RepoSpec{
			"scottidler/secrets": {},
		},
	}}

	got := section.Render()

	assert.Contains(t, got, `echo "git-crypt repos:"`)
	assert.Contains(t, got, "if ! command -v git-crypt >/dev/null 2>&1; then")
	assert.Contains(t, got, `if [ -z "$GIT_CRYPT_PASSWORD" ]; then`)
	assert.Contains(t, got, `(cd /work/repos/scottidler_secrets && echo "$GIT_CRYPT_PASSWORD" | git-crypt unlock -) || { echo "git-crypt unlock failed for scottidler/secrets" >&2; exit 1; }`)

	// preconditions come before any repo block
	precondition := strings.Index(got, "command -v git-crypt")
	repoBlock := strings.Index(got, "git clone")
	assert.True(t, precondition >= 0 && precondition < repoBlock)
}

func TestScriptSectionVerbatim(t *testing.T) {
	section := ScriptSection{Scripts: map[string]string{
		"docker": "curl -fsSL https://get.docker.com | sh\n",
		"aws":    "pip install awscli",
	}}

	got := section.Render()

	want := `echo "scripts:"
echo "aws:"
pip install awscli
echo "docker:"
curl -fsSL https://get.docker.com | sh
`
	assert.Equal(t, want, got)
}

func TestSectionFunctions(t *testing.T) {
	assert.Contains(t, strings.Join(LinkSection{}.Functions(), ""), "linker()")
	assert.Contains(t, strings.Join(GithubSection{}.Functions(), ""), "linker()")
	assert.Contains(t, strings.Join(ScriptSection{}.Functions(), ""), "latest()")
	assert.Empty(t, AptSection{}.Functions())
	assert.Empty(t, PpaSection{}.Functions())
}
