package faq

// Intent is one recognized question category: a set of example phrasings and
// a single canonical answer. Question order never affects matching; the
// position of the intent inside the store decides ties.
type Intent struct {
	ID        int      `json:"id"`
	Questions []string `json:"questions"`
	Answer    string   `json:"answer"`
}

// Seed provides the default EcosRev FAQ shipped with the app.
func Seed() []Intent {
	return []Intent{
		{
			ID: 1,
			Questions: []string{
				"Como faço login?",
				"Como entrar na minha conta?",
				"Não consigo fazer login",
			},
			Answer: "Para entrar, use o email e a senha cadastrados na tela inicial. Se a senha estiver incorreta, toque em 'Esqueceu a senha?' para receber uma senha temporária por email.",
		},
		{
			ID: 2,
			Questions: []string{
				"Como criar uma conta?",
				"Como me cadastrar no EcosRev?",
				"Quero fazer meu cadastro",
			},
			Answer: "Na tela de login, toque em 'Cadastre-se' e informe nome, email e senha. Você receberá um email de confirmação para ativar a conta.",
		},
		{
			ID: 3,
			Questions: []string{
				"Como ganho pontos?",
				"Como funciona a pontuação?",
				"O que preciso fazer para pontuar?",
			},
			Answer: "Você ganha pontos entregando eletrônicos usados em um ponto de coleta parceiro. O atendente gera um QR code e você escaneia pelo aplicativo para receber os pontos na hora.",
		},
		{
			ID: 4,
			Questions: []string{
				"Onde vejo meus pontos?",
				"Como consultar meu saldo de pontos?",
				"Quantos pontos eu tenho?",
			},
			Answer: "Seu saldo de pontos aparece na tela de perfil e na tela inicial, logo abaixo do seu nome.",
		},
		{
			ID: 5,
			Questions: []string{
				"Como troco meus pontos por benefícios?",
				"Quais benefícios posso resgatar?",
				"Onde uso meus pontos?",
			},
			Answer: "Na aba Benefícios você encontra as recompensas disponíveis. Escolha uma e confirme o resgate; os pontos são descontados do seu saldo automaticamente.",
		},
		{
			ID: 6,
			Questions: []string{
				"Como escanear o QR code?",
				"O scanner não está funcionando",
				"Onde fica o leitor de QR code?",
			},
			Answer: "Toque no ícone de QR code no menu inferior e aponte a câmera para o código. Se a câmera não abrir, verifique se o aplicativo tem permissão de câmera nas configurações do celular.",
		},
		{
			ID: 7,
			Questions: []string{
				"Esqueci minha senha",
				"Como recuperar minha senha?",
				"Como trocar minha senha?",
			},
			Answer: "Na tela de login, toque em 'Esqueceu a senha?' e informe seu email. Enviaremos uma senha temporária; ao entrar com ela, o aplicativo pedirá que você crie uma nova senha.",
		},
		{
			ID: 8,
			Questions: []string{
				"Onde descarto meus eletrônicos?",
				"O que posso reciclar?",
				"Quais aparelhos são aceitos?",
			},
			Answer: "Aceitamos celulares, notebooks, pilhas, baterias, cabos e pequenos eletrodomésticos. Os endereços dos pontos de coleta parceiros estão na aba Pontos de Coleta.",
		},
		{
			ID: 9,
			Questions: []string{
				"O que é o EcosRev?",
				"Para que serve o aplicativo?",
				"Como funciona o EcosRev?",
			},
			Answer: "O EcosRev é um programa de recompensas por reciclagem: você descarta eletrônicos corretamente, acumula pontos e troca por benefícios.",
		},
	}
}
