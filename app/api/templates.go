package api

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Dictionary</title>
</head>
<body>
<div class="dictionary-container">
  <h1 class="title">Dictionary</h1>
  <form class="input-container" method="post" action="/">
    <input type="text" class="input-field" name="word" value="{{ .Query }}" placeholder="Enter a word...">
    <button type="submit" class="search-button">Search</button>
  </form>
  {{- if .Error }}
  <div class="error-message">{{ .Error }}</div>
  {{- end }}
  {{- with .Result }}
  <div class="results-container">
    <h2 class="word">Word: {{ .Word }}</h2>
    {{- if .Phonetics }}
    <p class="phonetic">Phonetic: {{ .PhoneticText }}</p>
    {{- end }}
    {{- if .HasAudio }}
    <audio controls class="audio-player">
      <source src="{{ .Phonetics.Audio }}" type="audio/mpeg">
      Your browser does not support the audio element.
    </audio>
    {{- end }}
    <h3 class="definition">Definition: {{ .DefinitionText }}</h3>
    {{- if .Example }}
    <p class="example">Example: {{ .Example }}</p>
    {{- end }}
    {{- if .Synonym }}
    <p class="synonym">Synonym: {{ .Synonym }}</p>
    {{- end }}
  </div>
  {{- end }}
</div>
</body>
</html>
`
