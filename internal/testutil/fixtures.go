package testutil

// Representative receipt texts, trimmed from real-world layouts. Shared by
// field extraction and pipeline tests.
const (
	// SampleReceiptText is a point-of-sale supermarket receipt.
	SampleReceiptText = `SUPERMERCADO COMETA LTDA
CNPJ 12.345.678/0001-90
CUPOM FISCAL
ARROZ 5KG          25,90
FEIJAO 1KG          8,50
Total: R$ 123,45
03/08/2025 as 11:32
OBRIGADO PELA PREFERENCIA`

	// SamplePixReceiptText is a bank transfer confirmation.
	SamplePixReceiptText = `Comprovante de transferencia
Pix realizado com sucesso
Valor: R$ 250,00
03/08/2025 às 11:32:15
Recebedor
Supermercado Cometa Ltda
CPF/CNPJ 12.345.678/0001-90
Instituicao Banco Exemplo S.A.`
)
