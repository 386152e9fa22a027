package normalize

// Sources is the "where did you hear about us" catalog.
var Sources = newCatalog(CatalogSource, 2, 3, titleCase, []Entry{
	{Label: "LinkedIn", Variants: []string{"linkedin", "linked in", "lnkd", "linkedin jobs"}},
	{Label: "Indeed", Variants: []string{"indeed", "indeed.com", "indeed.com.br"}},
	{Label: "Instagram", Variants: []string{"instagram", "insta", "ig"}},
	{Label: "Facebook", Variants: []string{"facebook", "fb", "grupo do facebook"}},
	{Label: "WhatsApp", Variants: []string{"whatsapp", "whats", "wpp", "zap", "grupo de whatsapp"}},
	{Label: "Indicação", Variants: []string{
		"indicacao", "indicado", "indicada", "amigo", "amiga", "referral",
		"indicacao de amigo", "indicacao de colaborador", "funcionario",
	}},
	{Label: "Site da Empresa", Variants: []string{
		"site", "website", "site da empresa", "pagina de carreiras", "trabalhe conosco", "portal de carreiras",
	}},
	{Label: "Gupy", Variants: []string{"gupy", "gupy.io"}},
	{Label: "Vagas.com", Variants: []string{"vagas.com", "vagas", "vagas.com.br"}},
	{Label: "Catho", Variants: []string{"catho"}},
	{Label: "InfoJobs", Variants: []string{"infojobs", "info jobs"}},
	{Label: "Google", Variants: []string{"google", "google for jobs", "pesquisa no google"}},
	{Label: "Feira/Evento", Variants: []string{"feira", "evento", "feira de empregos", "job fair"}},
	{Label: "Universidade", Variants: []string{"universidade", "faculdade", "parceria universidade", "mural da faculdade"}},
	{Label: "SINE", Variants: []string{"sine", "fgtas", "agencia do trabalhador"}},
	{Label: "Outros", Variants: []string{"outro", "outros", "other"}},
})
