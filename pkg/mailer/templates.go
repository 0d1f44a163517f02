package mailer

import (
	"html/template"

	"github.com/Masterminds/sprig/v3"
)

var verificationTemplate = template.Must(
	template.New("verification").Funcs(sprig.FuncMap()).Parse(`
<p>Hello,</p>
<p>Your ZZINCAFE verification code is:</p>
<p><b>{{ .Code | upper }}</b></p>
<p>The code expires in {{ .TTL }}. If you did not request it, you can ignore this email.</p>
<p>ZZINCAFE</p>
`))

var passwordResetTemplate = template.Must(
	template.New("password_reset").Funcs(sprig.FuncMap()).Parse(`
<p>Hello,</p>
<p>We received a request to reset your ZZINCAFE password.</p>
<p><a href="{{ .Link }}">{{ .Link | trunc 120 }}</a></p>
<p>The link expires in {{ .TTL }}. If you did not request a reset, your account is safe and no action is needed.</p>
<p>ZZINCAFE</p>
`))
