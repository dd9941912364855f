package manifest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/scottidler/manifest/pkg/paths"
)

const indent = "    "

// renderHeredoc emits the heredoc shape: an echo header, a while-read
// loop whose body runs per line, and the payload joined into the
// heredoc literal.
func renderHeredoc(header, read, body string, lines []string) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	fmt.Fprintf(&b, "while read %s; do\n", read)
	for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
		b.WriteString(indent)
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("done<<EOM\n")
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("EOM\n")
	return b.String()
}

// renderContinue emits the continuation shape: an echo header plus any
// fixed preamble, then one command with the payload as backslash-
// continued arguments. The last item carries no continuation marker.
func renderContinue(header, command string, items []string) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(command)
	b.WriteString(" \\\n")
	for i, item := range items {
		b.WriteString(indent)
		b.WriteString(item)
		if i < len(items)-1 {
			b.WriteString(" \\")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Render implements Section
func (s LinkSection) Render() string {
	if len(s.Pairs) == 0 {
		return ""
	}
	lines := make([]string, 0, len(s.Pairs))
	for _, pair := range s.Pairs {
		lines = append(lines, pair.Source+" "+pair.Dest)
	}
	return renderHeredoc(`echo "links:"`, "-r file link", `linker "$file" "$link"`, lines)
}

// Render implements Section
func (s PpaSection) Render() string {
	if len(s.Items) == 0 {
		return ""
	}
	body := `ppas=$(find /etc/apt/ -name '*.list' | xargs cat | grep -E '^\s*deb' | grep -v deb-src)
if [[ $ppas != *"$pkg"* ]]; then
    sudo add-apt-repository -y "ppa:$pkg"
fi`
	return renderHeredoc(`echo "ppas:"`, "pkg", body, s.Items)
}

// Render implements Section
func (s AptSection) Render() string {
	if len(s.Items) == 0 {
		return ""
	}
	header := `echo "apt packages:"
sudo apt update && sudo apt upgrade -y && sudo apt install -y software-properties-common`
	return renderContinue(header, "sudo apt install -y", s.Items)
}

// Render implements Section
func (s DnfSection) Render() string {
	if len(s.Items) == 0 {
		return ""
	}
	return renderContinue(`echo "dnf packages:"`, "sudo dnf install -y", s.Items)
}

// Render implements Section
func (s NpmSection) Render() string {
	if len(s.Items) == 0 {
		return ""
	}
	return renderContinue(`echo "npm packages:"`, "sudo npm install -g", s.Items)
}

// Render implements Section
func (s Pip3Section) Render() string {
	if len(s.Items) == 0 && len(s.Distutils) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`echo "pip3 packages:"
sudo apt-get install -y python3-dev
sudo -H pip3 install --upgrade pip setuptools
`)
	if len(s.Distutils) > 0 {
		packages := make([]string, 0, len(s.Distutils))
		for _, name := range s.Distutils {
			packages = append(packages, "python3-"+name)
		}
		b.WriteString(renderContinue(`echo "pip3 distutils:"`, "sudo apt-get install -y", packages))
	}
	if len(s.Items) > 0 {
		b.WriteString("sudo -H pip3 install --upgrade \\\n")
		for i, item := range s.Items {
			b.WriteString(indent)
			b.WriteString(item)
			if i < len(s.Items)-1 {
				b.WriteString(" \\")
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Render implements Section
func (s PipxSection) Render() string {
	if len(s.Items) == 0 {
		return ""
	}
	return renderHeredoc(`echo "pipx packages:"`, "pkg", `pipx install "$pkg"`, s.Items)
}

// Render implements Section
func (s FlatpakSection) Render() string {
	if len(s.Items) == 0 {
		return ""
	}
	return renderContinue(`echo "flatpak packages:"`, "flatpak install --assumeyes --or-update", s.Items)
}

// Render implements Section
func (s CargoSection) Render() string {
	if len(s.Items) == 0 {
		return ""
	}
	return renderContinue(`echo "cargo crates:"`, "cargo install", s.Items)
}

// Render implements Section
func (s GithubSection) Render() string {
	if len(s.Repos) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`echo "github repos:"` + "\n")
	s.renderRepos(&b, false)
	return b.String()
}

// Render implements Section
func (s GitCryptSection) Render() string {
	if len(s.Repos) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`echo "git-crypt repos:"` + "\n")
	// The whole section is useless without the tool and a passphrase,
	// so the generated script refuses to continue rather than silently
	// skipping a secrets repository.
	b.WriteString(`if ! command -v git-crypt >/dev/null 2>&1; then
    echo "git-crypt is required but not installed" >&2
    exit 1
fi
if [ -z "$GIT_CRYPT_PASSWORD" ]; then
    echo "GIT_CRYPT_PASSWORD is not set" >&2
    exit 1
fi
`)
	s.renderRepos(&b, true)
	return b.String()
}

// renderRepos emits the per-repository blocks in sorted key order so
// output is byte-identical across runs.
func (s GithubSection) renderRepos(b *strings.Builder, unlock bool) {
	keys := make([]string, 0, len(s.Repos))
	for key := range s.Repos {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		repo := s.Repos[key]
		path := s.Cwd + "/" + s.Repopath + "/" + strings.ReplaceAll(key, "/", "_")

		fmt.Fprintf(b, "echo \"%s:\"\n", key)
		fmt.Fprintf(b, "git clone --recursive https://github.com/%s %s\n", key, path)
		fmt.Fprintf(b, "(cd %s && git pull && git checkout HEAD)\n", path)

		if unlock {
			fmt.Fprintf(b, "(cd %s && echo \"$GIT_CRYPT_PASSWORD\" | git-crypt unlock -) || { echo \"git-crypt unlock failed for %s\" >&2; exit 1; }\n", path, key)
		}

		for _, rel := range repo.Cargo {
			fmt.Fprintf(b, "cargo install --path %s/%s\n", path, rel)
		}

		if !repo.Link.IsEmpty() {
			lines := make([]string, 0, len(repo.Link.Items))
			for _, src := range repo.Link.Keys() {
				dst := paths.ExpandHome(repo.Link.Items[src], s.Home)
				lines = append(lines, path+"/"+src+" "+dst)
			}
			b.WriteString(renderHeredoc(`echo "links:"`, "-r file link", `linker "$file" "$link"`, lines))
		}

		renderScripts(b, repo.Script.Items)
	}
}

// Render implements Section
func (s ScriptSection) Render() string {
	if len(s.Scripts) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`echo "scripts:"` + "\n")
	renderScripts(&b, s.Scripts)
	return b.String()
}

// renderScripts emits each script body verbatim after an identifying
// echo, in sorted name order. Bodies are operator-authored shell and
// pass through unmodified.
func renderScripts(b *strings.Builder, scripts map[string]string) {
	names := make([]string, 0, len(scripts))
	for name := range scripts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(b, "echo \"%s:\"\n", name)
		body := scripts[name]
		b.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			b.WriteString("\n")
		}
	}
}
