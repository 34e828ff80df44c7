package bot

const sessionTemplate = `
{{- if .Error }}<b>{{ html .Error }}</b>
{{- else }}{{ with .Result }}<b>Word: {{ html .Word }}</b>
{{- if .Phonetics }}
<u>Phonetic</u>: {{ html .PhoneticText }}
{{- end }}
<b>Definition</b>: {{ html .DefinitionText }}
{{- if .Example }}
<i>Example</i>: {{ html .Example }}
{{- end }}
{{- if .Synonym }}
<i>Synonym</i>: {{ html .Synonym }}
{{- end }}
{{- end }}{{ end }}`
