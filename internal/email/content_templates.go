package email

// contactRequestContentTemplate renders the admin notification for an
// inbound contact form submission.
const contactRequestContentTemplate = `
<h2>New Contact Request</h2>
<table class="detail-table">
    <tr><td>Name</td><td>{{.FirstName}} {{.LastName}}</td></tr>
    <tr><td>Email</td><td><a href="mailto:{{.Email}}">{{.Email}}</a></td></tr>
    {{if .Phone}}<tr><td>Phone</td><td>{{.Phone}}</td></tr>{{end}}
    <tr><td>Subject</td><td>{{.Subject}}</td></tr>
    <tr><td>Submitted</td><td>{{.SubmittedAt}}</td></tr>
</table>
<div class="message-box">{{.Message}}</div>
`

// bookingCustomerContentTemplate confirms receipt of a coaching session
// request to the rider.
const bookingCustomerContentTemplate = `
<h2>We got your session request!</h2>
<p>Hey {{.CustomerName}},</p>
<p>Thanks for booking with Coleman MX. Here's what you asked for:</p>
<table class="detail-table">
    <tr><td>Package</td><td>{{.Package}}</td></tr>
    {{if .SkillLevel}}<tr><td>Skill level</td><td>{{.SkillLevel}}</td></tr>{{end}}
    <tr><td>Date</td><td>{{.RequestedDate}}</td></tr>
    <tr><td>Time</td><td>{{.RequestedSlot}}</td></tr>
</table>
<p>We'll confirm the slot within one business day. If the track schedule
changes we'll reach out with alternatives.</p>
<p>See you at the gate,<br>Coleman MX</p>
`

// bookingAdminContentTemplate notifies the coach of a new booking.
const bookingAdminContentTemplate = `
<h2>New Booking Request</h2>
<table class="detail-table">
    <tr><td>Rider</td><td>{{.CustomerName}}</td></tr>
    <tr><td>Email</td><td><a href="mailto:{{.Email}}">{{.Email}}</a></td></tr>
    {{if .Phone}}<tr><td>Phone</td><td>{{.Phone}}</td></tr>{{end}}
    <tr><td>Package</td><td>{{.Package}}</td></tr>
    {{if .SkillLevel}}<tr><td>Skill level</td><td>{{.SkillLevel}}</td></tr>{{end}}
    <tr><td>Date</td><td>{{.RequestedDate}}</td></tr>
    <tr><td>Time</td><td>{{.RequestedSlot}}</td></tr>
</table>
{{if .Notes}}<div class="message-box">{{.Notes}}</div>{{end}}
`
