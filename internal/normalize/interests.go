package normalize

// InterestAreas is the catalog of job areas a candidate can apply for.
var InterestAreas = newCatalog(CatalogInterestAreas, 3, 3, titleCase, []Entry{
	{Label: "Administrativo", Variants: []string{
		"administrativo", "administracao", "adm", "auxiliar administrativo", "assistente administrativo",
		"escritorio", "secretariado", "recepcao",
	}},
	{Label: "Atendimento ao Cliente", Variants: []string{
		"atendimento", "atendimento ao cliente", "sac", "call center", "telemarketing", "customer success",
	}},
	{Label: "Comercial/Vendas", Variants: []string{
		"comercial", "vendas", "vendedor", "vendedora", "representante comercial", "sales", "inside sales",
	}},
	{Label: "Financeiro", Variants: []string{
		"financeiro", "financas", "contabilidade", "contabil", "fiscal", "tesouraria",
	}},
	{Label: "Logística", Variants: []string{
		"logistica", "estoque", "almoxarifado", "expedicao", "transporte", "supply chain",
	}},
	{Label: "Marketing", Variants: []string{
		"marketing", "marketing digital", "mkt", "midias sociais", "redes sociais", "social media",
		"publicidade", "comunicacao",
	}},
	{Label: "Recursos Humanos", Variants: []string{
		"rh", "recursos humanos", "gestao de pessoas", "recrutamento", "recrutamento e selecao",
		"departamento pessoal", "dp",
	}},
	{Label: "Tecnologia", Variants: []string{
		"ti", "tecnologia", "tecnologia da informacao", "informatica", "desenvolvimento", "programacao",
		"software", "dev", "suporte tecnico", "infraestrutura", "dados",
	}},
	{Label: "Design", Variants: []string{"design", "design grafico", "ux", "ui", "ux/ui"}},
	{Label: "Jurídico", Variants: []string{"juridico", "direito", "advocacia"}},
	{Label: "Engenharia", Variants: []string{"engenharia", "engenheiro", "engenheira"}},
	{Label: "Produção", Variants: []string{"producao", "operacional", "operacoes", "chao de fabrica", "manutencao"}},
	{Label: "Compras", Variants: []string{"compras", "suprimentos", "comprador"}},
	{Label: "Saúde", Variants: []string{"saude", "enfermagem", "tecnico de enfermagem"}},
	{Label: "Educação", Variants: []string{"educacao", "ensino", "professor", "professora", "pedagogia"}},
})
